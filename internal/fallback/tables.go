// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package fallback

// Category names recognized across the system.
const (
	CategoryMusic       = "music"
	CategoryMovie       = "movie"
	CategoryTVShow      = "tv_show"
	CategoryBook        = "book"
	CategoryBrand       = "brand"
	CategoryPodcast     = "podcast"
	CategoryVideoGame   = "video_game"
	CategoryDestination = "destination"
	CategoryRestaurant  = "restaurant"
	CategoryInfluencer  = "influencer"
)

// order is the canonical category order used when listing categories.
var order = []string{
	CategoryMusic,
	CategoryMovie,
	CategoryTVShow,
	CategoryBook,
	CategoryBrand,
	CategoryPodcast,
	CategoryVideoGame,
	CategoryDestination,
	CategoryRestaurant,
	CategoryInfluencer,
}

// curated holds the static items served when live data is unavailable.
// Every entry must be non-empty.
var curated = map[string][]string{
	CategoryMusic: {
		"Daft Punk",
		"Christine and the Queens",
		"Stromae",
		"Phoenix",
		"Angèle",
	},
	CategoryMovie: {
		"Amélie",
		"Intouchables",
		"La La Land",
		"Inception",
		"Portrait de la jeune fille en feu",
	},
	CategoryTVShow: {
		"Lupin",
		"Dix pour cent",
		"Le Bureau des légendes",
		"Stranger Things",
		"The Crown",
	},
	CategoryBook: {
		"L'Étranger",
		"Le Petit Prince",
		"Sapiens",
		"L'Amie prodigieuse",
		"Atomic Habits",
	},
	CategoryBrand: {
		"Apple",
		"Decathlon",
		"Veja",
		"Patagonia",
		"Sézane",
	},
	CategoryPodcast: {
		"Génération Do It Yourself",
		"Transfert",
		"Les Couilles sur la table",
		"La Poudre",
		"Affaires sensibles",
	},
	CategoryVideoGame: {
		"The Legend of Zelda: Breath of the Wild",
		"Minecraft",
		"Assassin's Creed",
		"Animal Crossing: New Horizons",
		"Rayman Legends",
	},
	CategoryDestination: {
		"Lisbonne",
		"Barcelone",
		"Kyoto",
		"Biarritz",
		"Annecy",
	},
	CategoryRestaurant: {
		"Bistrot de quartier",
		"Brasserie traditionnelle",
		"Restaurant bistronomique",
		"Cantine végétarienne",
		"Bouchon lyonnais",
	},
	CategoryInfluencer: {
		"Squeezie",
		"Léna Situations",
		"Cyprien",
		"HugoDécrypte",
		"Natoo",
	},
}
