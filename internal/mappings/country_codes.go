package mappings

import "strings"

// factbookCountryCodes translates the agency-specific two-letter codes used
// by the factbook-style datasets into ISO 3166-1 alpha-2. The two code
// spaces overlap just enough to be dangerous: "cg" is Congo (Kinshasa) here
// but the Republic of the Congo in ISO, "gm" is Germany, "ja" is Japan.
var factbookCountryCodes = map[string]string{
	"af": "AF", // Afghanistan
	"al": "AL", // Albania
	"ag": "DZ", // Algeria
	"an": "AD", // Andorra
	"ao": "AO", // Angola
	"ac": "AG", // Antigua and Barbuda
	"ar": "AR", // Argentina
	"am": "AM", // Armenia
	"as": "AU", // Australia
	"au": "AT", // Austria
	"aj": "AZ", // Azerbaijan
	"bf": "BS", // Bahamas
	"ba": "BH", // Bahrain
	"bg": "BD", // Bangladesh
	"bb": "BB", // Barbados
	"bo": "BY", // Belarus
	"be": "BE", // Belgium
	"bh": "BZ", // Belize
	"bn": "BJ", // Benin
	"bt": "BT", // Bhutan
	"bl": "BO", // Bolivia
	"bk": "BA", // Bosnia and Herzegovina
	"bc": "BW", // Botswana
	"br": "BR", // Brazil
	"bx": "BN", // Brunei
	"bu": "BG", // Bulgaria
	"uv": "BF", // Burkina Faso
	"bm": "MM", // Burma (Myanmar)
	"by": "BI", // Burundi
	"cb": "KH", // Cambodia
	"cm": "CM", // Cameroon
	"ca": "CA", // Canada
	"cv": "CV", // Cabo Verde
	"ct": "CF", // Central African Republic
	"cd": "TD", // Chad
	"ci": "CL", // Chile
	"ch": "CN", // China
	"co": "CO", // Colombia
	"cn": "KM", // Comoros
	"cg": "CD", // Congo, Democratic Republic of the
	"cf": "CG", // Congo, Republic of the
	"cs": "CR", // Costa Rica
	"iv": "CI", // Cote d'Ivoire
	"hr": "HR", // Croatia
	"cu": "CU", // Cuba
	"cy": "CY", // Cyprus
	"ez": "CZ", // Czechia
	"da": "DK", // Denmark
	"dj": "DJ", // Djibouti
	"do": "DM", // Dominica
	"dr": "DO", // Dominican Republic
	"ec": "EC", // Ecuador
	"eg": "EG", // Egypt
	"es": "SV", // El Salvador
	"ek": "GQ", // Equatorial Guinea
	"er": "ER", // Eritrea
	"en": "EE", // Estonia
	"wz": "SZ", // Eswatini
	"et": "ET", // Ethiopia
	"fj": "FJ", // Fiji
	"fi": "FI", // Finland
	"fr": "FR", // France
	"gb": "GA", // Gabon
	"ga": "GM", // Gambia
	"gg": "GE", // Georgia
	"gm": "DE", // Germany
	"gh": "GH", // Ghana
	"gr": "GR", // Greece
	"gj": "GD", // Grenada
	"gt": "GT", // Guatemala
	"gv": "GN", // Guinea
	"pu": "GW", // Guinea-Bissau
	"gy": "GY", // Guyana
	"ha": "HT", // Haiti
	"ho": "HN", // Honduras
	"hu": "HU", // Hungary
	"ic": "IS", // Iceland
	"in": "IN", // India
	"id": "ID", // Indonesia
	"ir": "IR", // Iran
	"iz": "IQ", // Iraq
	"ei": "IE", // Ireland
	"is": "IL", // Israel
	"it": "IT", // Italy
	"jm": "JM", // Jamaica
	"ja": "JP", // Japan
	"jo": "JO", // Jordan
	"kz": "KZ", // Kazakhstan
	"ke": "KE", // Kenya
	"kr": "KI", // Kiribati
	"kn": "KP", // Korea, North
	"ks": "KR", // Korea, South
	"kv": "XK", // Kosovo
	"ku": "KW", // Kuwait
	"kg": "KG", // Kyrgyzstan
	"la": "LA", // Laos
	"lg": "LV", // Latvia
	"le": "LB", // Lebanon
	"lt": "LS", // Lesotho
	"li": "LR", // Liberia
	"ly": "LY", // Libya
	"ls": "LI", // Liechtenstein
	"lh": "LT", // Lithuania
	"lu": "LU", // Luxembourg
	"ma": "MG", // Madagascar
	"mi": "MW", // Malawi
	"my": "MY", // Malaysia
	"mv": "MV", // Maldives
	"ml": "ML", // Mali
	"mt": "MT", // Malta
	"rm": "MH", // Marshall Islands
	"mr": "MR", // Mauritania
	"mp": "MU", // Mauritius
	"mx": "MX", // Mexico
	"fm": "FM", // Micronesia
	"md": "MD", // Moldova
	"mn": "MC", // Monaco
	"mg": "MN", // Mongolia
	"mj": "ME", // Montenegro
	"mo": "MA", // Morocco
	"mz": "MZ", // Mozambique
	"wa": "NA", // Namibia
	"nr": "NR", // Nauru
	"np": "NP", // Nepal
	"nl": "NL", // Netherlands
	"nz": "NZ", // New Zealand
	"nu": "NI", // Nicaragua
	"ng": "NE", // Niger
	"ni": "NG", // Nigeria
	"mk": "MK", // North Macedonia
	"no": "NO", // Norway
	"mu": "OM", // Oman
	"pk": "PK", // Pakistan
	"ps": "PW", // Palau
	"pm": "PA", // Panama
	"pp": "PG", // Papua New Guinea
	"pa": "PY", // Paraguay
	"pe": "PE", // Peru
	"rp": "PH", // Philippines
	"pl": "PL", // Poland
	"po": "PT", // Portugal
	"qa": "QA", // Qatar
	"ro": "RO", // Romania
	"rs": "RU", // Russia
	"rw": "RW", // Rwanda
	"sc": "KN", // Saint Kitts and Nevis
	"st": "LC", // Saint Lucia
	"vc": "VC", // Saint Vincent and the Grenadines
	"ws": "WS", // Samoa
	"sm": "SM", // San Marino
	"tp": "ST", // Sao Tome and Principe
	"sa": "SA", // Saudi Arabia
	"sg": "SN", // Senegal
	"ri": "RS", // Serbia
	"se": "SC", // Seychelles
	"sl": "SL", // Sierra Leone
	"sn": "SG", // Singapore
	"lo": "SK", // Slovakia
	"si": "SI", // Slovenia
	"bp": "SB", // Solomon Islands
	"so": "SO", // Somalia
	"sf": "ZA", // South Africa
	"od": "SS", // South Sudan
	"sp": "ES", // Spain
	"ce": "LK", // Sri Lanka
	"su": "SD", // Sudan
	"ns": "SR", // Suriname
	"sw": "SE", // Sweden
	"sz": "CH", // Switzerland
	"sy": "SY", // Syria
	"tw": "TW", // Taiwan
	"ti": "TJ", // Tajikistan
	"tz": "TZ", // Tanzania
	"th": "TH", // Thailand
	"tt": "TL", // Timor-Leste
	"to": "TG", // Togo
	"tn": "TO", // Tonga
	"td": "TT", // Trinidad and Tobago
	"ts": "TN", // Tunisia
	"tu": "TR", // Turkey
	"tx": "TM", // Turkmenistan
	"tv": "TV", // Tuvalu
	"ug": "UG", // Uganda
	"up": "UA", // Ukraine
	"ae": "AE", // United Arab Emirates
	"uk": "GB", // United Kingdom
	"us": "US", // United States
	"uy": "UY", // Uruguay
	"uz": "UZ", // Uzbekistan
	"nh": "VU", // Vanuatu
	"ve": "VE", // Venezuela
	"vm": "VN", // Vietnam
	"ym": "YE", // Yemen
	"za": "ZM", // Zambia
	"zi": "ZW", // Zimbabwe
}

// FactbookToISO2 translates a factbook country code into ISO alpha-2.
// The empty string means the code is unknown.
func FactbookToISO2(code string) string {
	return factbookCountryCodes[strings.ToLower(strings.TrimSpace(code))]
}
