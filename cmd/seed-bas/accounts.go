package main

import "github.com/bokfora/ledger_backend/models"

// basAccounts is the subset of the BAS chart a small business actually posts
// to. Names follow the published BAS standard.
var basAccounts = []models.Account{
	{Number: 1010, Name: "Utvecklingsutgifter"},
	{Number: 1110, Name: "Byggnader"},
	{Number: 1150, Name: "Markanläggningar"},
	{Number: 1220, Name: "Inventarier och verktyg"},
	{Number: 1229, Name: "Ackumulerade avskrivningar på inventarier"},
	{Number: 1240, Name: "Bilar och andra transportmedel"},
	{Number: 1250, Name: "Datorer"},
	{Number: 1310, Name: "Andelar i koncernföretag"},
	{Number: 1410, Name: "Lager av råvaror"},
	{Number: 1460, Name: "Lager av handelsvaror"},
	{Number: 1510, Name: "Kundfordringar"},
	{Number: 1630, Name: "Avräkning för skatter och avgifter"},
	{Number: 1650, Name: "Momsfordran"},
	{Number: 1710, Name: "Förutbetalda hyreskostnader"},
	{Number: 1790, Name: "Övriga förutbetalda kostnader och upplupna intäkter"},
	{Number: 1910, Name: "Kassa"},
	{Number: 1930, Name: "Företagskonto"},
	{Number: 1940, Name: "Övriga bankkonton"},
	{Number: 2010, Name: "Eget kapital"},
	{Number: 2013, Name: "Övriga egna uttag"},
	{Number: 2018, Name: "Övriga egna insättningar"},
	{Number: 2019, Name: "Årets resultat"},
	{Number: 2110, Name: "Periodiseringsfonder"},
	{Number: 2150, Name: "Ackumulerade överavskrivningar"},
	{Number: 2220, Name: "Avsättningar för garantier"},
	{Number: 2330, Name: "Checkräkningskredit"},
	{Number: 2350, Name: "Andra långfristiga skulder till kreditinstitut"},
	{Number: 2440, Name: "Leverantörsskulder"},
	{Number: 2510, Name: "Skatteskulder"},
	{Number: 2610, Name: "Utgående moms, 25 %"},
	{Number: 2640, Name: "Ingående moms"},
	{Number: 2650, Name: "Redovisningskonto för moms"},
	{Number: 2710, Name: "Personalskatt"},
	{Number: 2731, Name: "Avräkning lagstadgade sociala avgifter"},
	{Number: 2890, Name: "Övriga kortfristiga skulder"},
	{Number: 2910, Name: "Upplupna löner"},
	{Number: 2990, Name: "Övriga upplupna kostnader och förutbetalda intäkter"},
	{Number: 3010, Name: "Försäljning"},
	{Number: 3040, Name: "Försäljning av tjänster"},
	{Number: 3540, Name: "Faktureringsavgifter"},
	{Number: 3610, Name: "Försäljning av material"},
	{Number: 3740, Name: "Öres- och kronutjämning"},
	{Number: 3910, Name: "Hyres- och arrendeintäkter"},
	{Number: 3960, Name: "Valutakursvinster på fordringar och skulder"},
	{Number: 4010, Name: "Inköp av varor"},
	{Number: 4515, Name: "Inköp av varor från annat EU-land, 25 %"},
	{Number: 4600, Name: "Legoarbeten och underentreprenader"},
	{Number: 5010, Name: "Lokalhyra"},
	{Number: 5410, Name: "Förbrukningsinventarier"},
	{Number: 5460, Name: "Förbrukningsmaterial"},
	{Number: 5611, Name: "Drivmedel för personbilar"},
	{Number: 5910, Name: "Annonsering"},
	{Number: 6110, Name: "Kontorsmateriel"},
	{Number: 6212, Name: "Mobiltelefon"},
	{Number: 6230, Name: "Datakommunikation"},
	{Number: 6310, Name: "Företagsförsäkringar"},
	{Number: 6530, Name: "Redovisningstjänster"},
	{Number: 6570, Name: "Bankkostnader"},
	{Number: 7010, Name: "Löner till kollektivanställda"},
	{Number: 7210, Name: "Löner till tjänstemän"},
	{Number: 7510, Name: "Arbetsgivaravgifter"},
	{Number: 7690, Name: "Övriga personalkostnader"},
	{Number: 7811, Name: "Avskrivningar på byggnader"},
	{Number: 7832, Name: "Avskrivningar på inventarier och verktyg"},
	{Number: 8310, Name: "Ränteintäkter från omsättningstillgångar"},
	{Number: 8410, Name: "Räntekostnader för långfristiga skulder"},
	{Number: 8420, Name: "Räntekostnader för kortfristiga skulder"},
}
