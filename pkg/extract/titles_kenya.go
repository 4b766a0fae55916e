package extract

// kenyaTitles lists every article title of the Constitution of Kenya, 2010 in
// document order, together with title variants seen in older printings. A
// title may appear more than once with different numbers.
var kenyaTitles = []TitleEntry{
	{"sovereignty of the people", 1},
	{"supremacy of this constitution", 2},
	{"defence of this constitution", 3},
	{"declaration of the republic", 4},
	{"territory of kenya", 5},
	{"devolution and access to services", 6},
	{"national, official and other languages", 7},
	{"state and religion", 8},
	{"national symbols and national days", 9},
	{"national values and principles of governance", 10},
	{"culture", 11},
	{"entitlements of citizens", 12},
	{"retention and acquisition of citizenship", 13},
	{"citizenship by birth", 14},
	{"citizenship by registration", 15},
	{"dual citizenship", 16},
	{"revocation of citizenship", 17},
	{"legislation on citizenship", 18},
	{"rights and fundamental freedoms", 19},
	{"application of bill of rights", 20},
	{"implementation of rights and fundamental freedoms", 21},
	{"enforcement of bill of rights", 22},
	{"authority of courts to uphold and enforce the bill of rights", 23},
	{"limitation of rights and fundamental freedoms", 24},
	{"limitation of rights or fundamental freedoms", 24},
	{"fundamental rights and freedoms that may not be limited", 25},
	{"right to life", 26},
	{"equality and freedom from discrimination", 27},
	{"human dignity", 28},
	{"freedom and security of the person", 29},
	{"slavery, servitude and forced labour", 30},
	{"privacy", 31},
	{"freedom of conscience, religion, belief and opinion", 32},
	{"freedom of expression", 33},
	{"freedom of the media", 34},
	{"access to information", 35},
	{"freedom of association", 36},
	{"assembly, demonstration, picketing and petition", 37},
	{"political rights", 38},
	{"freedom of movement and residence", 39},
	{"protection of right to property", 40},
	{"labour relations", 41},
	{"environment", 42},
	{"economic and social rights", 43},
	{"language and culture", 44},
	{"family", 45},
	{"consumer rights", 46},
	{"fair administrative action", 47},
	{"access to justice", 48},
	{"rights of arrested persons", 49},
	{"fair hearing", 50},
	{"rights of persons detained, held in custody or imprisoned", 51},
	{"interpretation of this part", 52},
	{"interpretation of part", 52},
	{"children", 53},
	{"persons with disabilities", 54},
	{"youth", 55},
	{"minorities and marginalised groups", 56},
	{"older members of society", 57},
	{"state of emergency", 58},
	{"kenya national human rights and equality commission", 59},
	{"principles of land policy", 60},
	{"classification of land", 61},
	{"public land", 62},
	{"community land", 63},
	{"private land", 64},
	{"landholding by non-citizens", 65},
	{"regulation of land use and property", 66},
	{"national land commission", 67},
	{"legislation on land", 68},
	{"obligations in respect of the environment", 69},
	{"enforcement of environmental rights", 70},
	{"agreements relating to natural resources", 71},
	{"legislation relating to the environment", 72},
	{"responsibilities of leadership", 73},
	{"oath of office of state officers", 74},
	{"conduct of state officers", 75},
	{"financial probity of state officers", 76},
	{"restriction on activities of state officers", 77},
	{"citizenship and leadership", 78},
	{"legislation to establish the ethics and anti-corruption commission", 79},
	{"legislation on leadership", 80},
	{"general principles for the electoral system", 81},
	{"legislation on elections", 82},
	{"registration as a voter", 83},
	{"candidates for election and political parties to comply with code of conduct", 84},
	{"eligibility to stand as an independent candidate", 85},
	{"voting", 86},
	{"electoral disputes", 87},
	{"independent electoral and boundaries commission", 88},
	{"delimitation of electoral units", 89},
	{"allocation of party list seats", 90},
	{"basic requirements for political parties", 91},
	{"legislation on political parties", 92},
	{"establishment of parliament", 93},
	{"role of parliament", 94},
	{"role of the national assembly", 95},
	{"role of the senate", 96},
	{"membership of the national assembly", 97},
	{"membership of the senate", 98},
	{"qualifications and disqualifications for election as member of parliament", 99},
	{"promotion of representation of marginalised groups", 100},
	{"election of members of parliament", 101},
	{"term of parliament", 102},
	{"vacation of office of member of parliament", 103},
	{"right of recall", 104},
	{"determination of questions of membership", 105},
	{"speakers and deputy speakers of parliament", 106},
	{"presiding in parliament", 107},
	{"party leaders", 108},
	{"exercise of legislative powers", 109},
	{"bills concerning county government", 110},
	{"special bills concerning county governments", 111},
	{"ordinary bills concerning county governments", 112},
	{"mediation committees", 113},
	{"money bills", 114},
	{"presidential assent and referral", 115},
	{"coming into force of laws", 116},
	{"powers, privileges and immunities", 117},
	{"public access and participation", 118},
	{"right to petition parliament", 119},
	{"official languages of parliament", 120},
	{"quorum", 121},
	{"voting in parliament", 122},
	{"decisions of senate", 123},
	{"committees and standing orders", 124},
	{"power to call for evidence", 125},
	{"location of sittings of parliament", 126},
	{"parliamentary service commission", 127},
	{"clerks and staff of parliament", 128},
	{"principles of executive authority", 129},
	{"the national executive", 130},
	{"authority of the president", 131},
	{"functions of the president", 132},
	{"power of mercy", 133},
	{"exercise of presidential powers during temporary incumbency", 134},
	{"decisions of the president", 135},
	{"election of the president", 136},
	{"qualifications and disqualifications for election as president", 137},
	{"procedure at presidential election", 138},
	{"death before assuming office", 139},
	{"questions as to validity of presidential election", 140},
	{"assumption of office of president", 141},
	{"term of office of president", 142},
	{"term of office of the president", 142},
	{"protection from legal proceedings", 143},
	{"removal of president on grounds of incapacity", 144},
	{"removal of president by impeachment", 145},
	{"vacancy in the office of president", 146},
	{"functions of the deputy president", 147},
	{"election and swearing-in of deputy president", 148},
	{"vacancy in the office of deputy president", 149},
	{"removal of deputy president", 150},
	{"remuneration and benefits of president and deputy president", 151},
	{"cabinet", 152},
	{"decisions, responsibility and accountability of the cabinet", 153},
	{"secretary to the cabinet", 154},
	{"principal secretaries", 155},
	{"attorney-general", 156},
	{"director of public prosecutions", 157},
	{"removal and resignation of director of public prosecutions", 158},
	{"judicial authority", 159},
	{"independence of the judiciary", 160},
	{"judicial offices and officers", 161},
	{"system of courts", 162},
	{"supreme court", 163},
	{"court of appeal", 164},
	{"high court", 165},
	{"appointment of chief justice, deputy chief justice and other judges", 166},
	{"tenure of office of the chief justice and other judges", 167},
	{"removal from office", 168},
	{"subordinate courts", 169},
	{"kadhis' courts", 170},
	{"kadhis courts", 170},
	{"establishment of the judicial service commission", 171},
	{"functions of the judicial service commission", 172},
	{"judiciary fund", 173},
	{"objects of devolution", 174},
	{"principles of devolved government", 175},
	{"county governments", 176},
	{"membership of county assembly", 177},
	{"speaker of a county assembly", 178},
	{"county executive committees", 179},
	{"election of county governor and deputy county governor", 180},
	{"removal of a county governor", 181},
	{"removal of a county government", 181},
	{"vacancy in the office of county governor", 182},
	{"functions of county executive committees", 183},
	{"urban areas and cities", 184},
	{"legislative authority of county assemblies", 185},
	{"respective functions and powers of national and county governments", 186},
	{"transfer of functions and powers between levels of government", 187},
	{"boundaries of counties", 188},
	{"cooperation between national and county governments", 189},
	{"support for county governments", 190},
	{"conflict of laws", 191},
	{"suspension of a county government", 192},
	{"suspension of county government", 192},
	{"qualifications for election as member of county assembly", 193},
	{"vacation of office of member of county assembly", 194},
	{"county assembly power to summon witnesses", 195},
	{"public participation and county assembly powers, privileges and immunities", 196},
	{"county assembly gender balance and diversity", 197},
	{"county government during transition", 198},
	{"publication of county legislation", 199},
	{"legislation on chapter", 200},
	{"principles of public finance", 201},
	{"equitable sharing of national revenue", 202},
	{"equitable share and other financial laws", 203},
	{"equalisation fund", 204},
	{"consultation on financial legislation affecting counties", 205},
	{"consolidated fund and other public funds", 206},
	{"revenue funds for county governments", 207},
	{"contingencies fund", 208},
	{"power to impose taxes and charges", 209},
	{"imposition of tax", 210},
	{"borrowing by national government", 211},
	{"borrowing by counties", 212},
	{"loan guarantees by national government", 213},
	{"public debt", 214},
	{"commission on revenue allocation", 215},
	{"functions of the commission on revenue allocation", 216},
	{"division of revenue", 217},
	{"annual division and allocation of revenue bills", 218},
	{"transfer of equitable share", 219},
	{"form, content and timing of budgets", 220},
	{"budget estimates and annual appropriation bill", 221},
	{"expenditure before annual budget is passed", 222},
	{"supplementary appropriation", 223},
	{"county appropriation bills", 224},
	{"financial control", 225},
	{"accounts and audit of public entities", 226},
	{"procurement of public goods and services", 227},
	{"controller of budget", 228},
	{"auditor-general", 229},
	{"salaries and remuneration commission", 230},
	{"central bank of kenya", 231},
	{"values and principles of public service", 232},
	{"the public service commission", 233},
	{"functions and powers of the public service commission", 234},
	{"staffing of county governments", 235},
	{"protection of public officers", 236},
	{"teachers service commission", 237},
	{"principles of national security", 238},
	{"national security organs", 239},
	{"establishment of the national security council", 240},
	{"establishment of kenya defence forces and defence council", 241},
	{"establishment of defence forces and defence council", 241},
	{"establishment of national intelligence service", 242},
	{"establishment of the national police service", 243},
	{"objects and functions of the national police service", 244},
	{"command of the national police service", 245},
	{"national police service commission", 246},
	{"other police services", 247},
	{"application of chapter", 248},
	{"objects, authority and funding of commissions and independent offices", 249},
	{"composition, appointment and terms of office", 250},
	{"removal from office", 251},
	{"general functions and powers", 252},
	{"incorporation of commissions and independent offices", 253},
	{"reporting by commissions and independent offices", 254},
	{"amendment of this constitution", 255},
	{"amendment by parliamentary initiative", 256},
	{"amendment by popular initiative", 257},
	{"enforcement of this constitution", 258},
	{"construing this constitution", 259},
	{"interpretation", 260},
	{"consequential legislation", 261},
	{"transitional and consequential provisions", 262},
	{"effective date", 263},
	{"repeal of previous constitution", 264},
}
