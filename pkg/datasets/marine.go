package datasets

// marineNames is the allow-list of water bodies shipped in world-marine.json.
var marineNames = []string{
	// Atlantic and Caribbean
	"Gulf of Mexico", "Caribbean Sea", "Sargasso Sea", "Gulf of Honduras",
	"Bay of Campeche", "Gulf of Panama", "Gulf of Venezuela", "Gulf of Guinea",
	"Río de la Plata", "Gulf of Maine", "Bay of Fundy", "Chesapeake Bay",
	"Gulf of St. Lawrence", "Labrador Sea", "Davis Strait", "Denmark Strait",
	"Drake Passage", "Strait of Magellan", "Scotia Sea",

	// Arctic
	"Hudson Bay", "James Bay", "Foxe Basin", "Hudson Strait", "Ungava Bay",
	"Baffin Bay", "Beaufort Sea", "Greenland Sea", "Norwegian Sea",
	"Barents Sea", "White Sea", "Kara Sea", "Laptev Sea", "East Siberian Sea",
	"Chukchi Sea",

	// European seas
	"North Sea", "Skagerrak", "Kattegat", "Baltic Sea", "Gulf of Bothnia",
	"Gulf of Finland", "Gulf of Riga", "English Channel", "Irish Sea",
	"Celtic Sea", "Bay of Biscay", "Strait of Gibraltar", "Alboran Sea",
	"Balearic Sea", "Gulf of Lion", "Ligurian Sea", "Tyrrhenian Sea",
	"Adriatic Sea", "Ionian Sea", "Aegean Sea", "Mediterranean Sea",
	"Sea of Marmara", "Bosporus", "Dardanelles", "Black Sea", "Sea of Azov",
	"Gulf of Sidra",

	// Middle East and Indian Ocean
	"Red Sea", "Gulf of Suez", "Gulf of Aqaba", "Bab-el-Mandeb", "Gulf of Aden",
	"Arabian Sea", "Gulf of Oman", "Strait of Hormuz", "Persian Gulf",
	"Laccadive Sea", "Gulf of Mannar", "Palk Strait", "Bay of Bengal",
	"Andaman Sea", "Mozambique Channel",

	// East and Southeast Asia
	"Strait of Malacca", "Gulf of Thailand", "South China Sea",
	"Gulf of Tonkin", "Taiwan Strait", "East China Sea", "Yellow Sea",
	"Bohai Sea", "Korea Strait", "Sea of Japan", "Sea of Okhotsk",
	"Luzon Strait", "Philippine Sea", "Sulu Sea", "Celebes Sea",
	"Makassar Strait", "Molucca Sea", "Banda Sea", "Flores Sea", "Java Sea",
	"Sunda Strait", "Savu Sea", "Timor Sea",

	// Pacific and Oceania
	"Bering Sea", "Bering Strait", "Gulf of Alaska", "Bristol Bay",
	"Strait of Georgia", "Puget Sound", "Gulf of California", "Arafura Sea",
	"Gulf of Carpentaria", "Torres Strait", "Gulf of Papua", "Coral Sea",
	"Solomon Sea", "Bismarck Sea", "Tasman Sea", "Bass Strait",
	"Great Australian Bight", "Cook Strait",

	// Southern Ocean
	"Weddell Sea", "Ross Sea", "Amundsen Sea", "Bellingshausen Sea",
}

// MarineNames returns the marine allow-list in emission order.
func MarineNames() []string {
	return append([]string(nil), marineNames...)
}
