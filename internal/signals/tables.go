// Tasteprofile - Persona Cultural Data Enrichment
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tasteprofile

package signals

import "regexp"

// Audience signals, one per age band.
const (
	AudienceGenZ        = "gen-z"
	AudienceMillennials = "millennials"
	AudienceGenX        = "gen-x"
	AudienceBoomers     = "baby-boomers"
)

// DefaultInterest is the bucket used when nothing else resolves.
const DefaultInterest = "lifestyle,culture"

type ageBand struct {
	maxAge   int // inclusive
	audience string
}

// ageBands is ordered by maxAge; the last band is open-ended.
var ageBands = []ageBand{
	{maxAge: 24, audience: AudienceGenZ},
	{maxAge: 34, audience: AudienceMillennials},
	{maxAge: 49, audience: AudienceGenX},
	{maxAge: 1<<31 - 1, audience: AudienceBoomers},
}

// interestTable maps folded interest phrases to comma-separated tags.
var interestTable = map[string]string{
	"technologie":               "technology,innovation",
	"technology":                "technology,innovation",
	"innovation":                "innovation,technology",
	"informatique":              "technology,software",
	"intelligence artificielle": "artificial intelligence,technology",
	"musique":                   "music,concerts",
	"music":                     "music,concerts",
	"cinema":                    "film,cinema",
	"films":                     "film,cinema",
	"series":                    "tv series,streaming",
	"lecture":                   "books,literature",
	"reading":                   "books,literature",
	"litterature":               "literature,books",
	"voyage":                    "travel,adventure",
	"voyages":                   "travel,adventure",
	"travel":                    "travel,adventure",
	"cuisine":                   "food,cooking",
	"cooking":                   "food,cooking",
	"gastronomie":               "gastronomy,food",
	"sport":                     "sports,fitness",
	"sports":                    "sports,fitness",
	"fitness":                   "fitness,wellness",
	"yoga":                      "yoga,wellness",
	"running":                   "running,fitness",
	"randonnee":                 "hiking,outdoors",
	"mode":                      "fashion,style",
	"fashion":                   "fashion,style",
	"art":                       "art,design",
	"photographie":              "photography,art",
	"design":                    "design,art",
	"jeux video":                "gaming,video games",
	"gaming":                    "gaming,video games",
	"jardinage":                 "gardening,nature",
	"nature":                    "nature,outdoors",
	"ecologie":                  "sustainability,nature",
	"entrepreneuriat":           "entrepreneurship,business",
	"finance":                   "finance,business",
	"podcasts":                  "podcasts,audio",
	"famille":                   "family,parenting",
	"bien-etre":                 "wellness,mindfulness",
	"meditation":                "mindfulness,wellness",
}

// valuesTable maps folded personal values to comma-separated tags.
var valuesTable = map[string]string{
	"innovation":        "innovation,technology",
	"creativite":        "creativity,art",
	"creativity":        "creativity,art",
	"authenticite":      "authenticity,craftsmanship",
	"authenticity":      "authenticity,craftsmanship",
	"durabilite":        "sustainability,eco-friendly",
	"sustainability":    "sustainability,eco-friendly",
	"ecoresponsabilite": "sustainability,eco-friendly",
	"liberte":           "freedom,adventure",
	"freedom":           "freedom,adventure",
	"aventure":          "adventure,outdoors",
	"famille":           "family,home",
	"family":            "family,home",
	"excellence":        "excellence,luxury",
	"performance":       "performance,sports",
	"partage":           "community,social",
	"solidarite":        "community,social impact",
	"communaute":        "community,social",
	"securite":          "security,family",
	"tradition":         "heritage,tradition",
	"independance":      "independence,entrepreneurship",
	"ambition":          "ambition,business",
	"bienveillance":     "wellness,community",
	"curiosite":         "curiosity,learning",
	"education":         "education,learning",
}

type keywordRule struct {
	keywords []string
	tags     string
}

// keywordTable is evaluated in order; the first rule with a keyword that
// occurs at a word start in the folded text wins.
var keywordTable = []keywordRule{
	{[]string{"tech", "digital", "numerique", "informatique", "logiciel", "software", "coding", "code", "programm", "developp", "startup", "robot", "crypto", "blockchain", "intelligence artificielle"}, "technology,innovation"},
	{[]string{"sport", "foot", "running", "courir", "velo", "cycl", "yoga", "muscu", "gym", "fitness", "randon", "hiking", "ski", "surf", "tennis", "basket", "natation", "escalade"}, "sports,fitness"},
	{[]string{"musique", "music", "concert", "festival", "rap", "rock", "jazz", "electro", "chant", "guitare", "piano", "vinyle"}, "music,concerts"},
	{[]string{"cinema", "film", "movie", "serie", "netflix", "streaming", "documentaire"}, "film,cinema"},
	{[]string{"cuisine", "cooking", "gastronom", "recette", "food", "patisserie", "vin", "wine", "restaurant", "chef", "oenolog"}, "food,cooking"},
	{[]string{"voyage", "travel", "backpack", "road trip", "tourisme", "expatri"}, "travel,adventure"},
	{[]string{"mode", "fashion", "style", "vetement", "luxe", "beaute", "beauty", "maquillage", "cosmeti"}, "fashion,style"},
	{[]string{"art", "peinture", "dessin", "musee", "museum", "photo", "design", "architect", "creati", "graphis"}, "art,design"},
	{[]string{"lecture", "livre", "book", "roman", "litterat", "ecriture", "poesie", "bd", "manga"}, "books,literature"},
	{[]string{"jeux", "jeu video", "gaming", "gamer", "esport", "console", "playstation", "nintendo", "xbox"}, "gaming,video games"},
	{[]string{"nature", "ecolog", "environnement", "durable", "green", "climat", "jardin", "zero dechet", "vegan", "bio"}, "sustainability,nature"},
	{[]string{"famille", "enfant", "parent", "maman", "papa", "kids", "family"}, "family,parenting"},
	{[]string{"sante", "health", "bien-etre", "wellness", "meditation", "mindful", "nutrition"}, "wellness,mindfulness"},
	{[]string{"finance", "invest", "bourse", "epargne", "money", "immobilier", "entrepreneur", "business", "marketing", "management", "vente"}, "business,entrepreneurship"},
	{[]string{"animal", "animaux", "chien", "chat", "pets"}, "pets,animals"},
	{[]string{"voiture", "moto", "automobile"}, "automotive,cars"},
	{[]string{"podcast", "radio"}, "podcasts,audio"},
}

type patternRule struct {
	re   *regexp.Regexp
	tags string
}

// patternTable catches free text the keyword table misses, using word shape.
var patternTable = []patternRule{
	{regexp.MustCompile(`^(apprendre|decouvrir|learn|discover)\b`), "education,learning"},
	{regexp.MustCompile(`^faire\b`), "diy,lifestyle"},
	{regexp.MustCompile(`isme$`), "culture,society"},
	{regexp.MustCompile(`(tion|sion)$`), "education,culture"},
	{regexp.MustCompile(`(ite|ity)$`), "lifestyle,values"},
	{regexp.MustCompile(`ment$`), "personal development,lifestyle"},
	{regexp.MustCompile(`ing$`), "hobbies,lifestyle"},
}

// cityTable maps folded city names to ISO 3166-2 style region codes.
var cityTable = map[string]string{
	"paris":                "FR-IDF",
	"boulogne-billancourt": "FR-IDF",
	"versailles":           "FR-IDF",
	"lyon":                 "FR-ARA",
	"grenoble":             "FR-ARA",
	"saint-etienne":        "FR-ARA",
	"clermont-ferrand":     "FR-ARA",
	"annecy":               "FR-ARA",
	"marseille":            "FR-PAC",
	"nice":                 "FR-PAC",
	"toulon":               "FR-PAC",
	"aix-en-provence":      "FR-PAC",
	"toulouse":             "FR-OCC",
	"montpellier":          "FR-OCC",
	"nimes":                "FR-OCC",
	"bordeaux":             "FR-NAQ",
	"limoges":              "FR-NAQ",
	"poitiers":             "FR-NAQ",
	"la rochelle":          "FR-NAQ",
	"lille":                "FR-HDF",
	"amiens":               "FR-HDF",
	"nantes":               "FR-PDL",
	"angers":               "FR-PDL",
	"le mans":              "FR-PDL",
	"rennes":               "FR-BRE",
	"brest":                "FR-BRE",
	"strasbourg":           "FR-GES",
	"reims":                "FR-GES",
	"metz":                 "FR-GES",
	"nancy":                "FR-GES",
	"dijon":                "FR-BFC",
	"besancon":             "FR-BFC",
	"rouen":                "FR-NOR",
	"caen":                 "FR-NOR",
	"le havre":             "FR-NOR",
	"tours":                "FR-CVL",
	"orleans":              "FR-CVL",
	"ajaccio":              "FR-20R",
	"bastia":               "FR-20R",
	"bruxelles":            "BE-BRU",
	"geneve":               "CH-GE",
	"montreal":             "CA-QC",
}

// audiencePlatforms is the base platform list per audience band.
var audiencePlatforms = map[string][]string{
	AudienceGenZ:        {"TikTok", "Instagram", "YouTube", "Snapchat"},
	AudienceMillennials: {"Instagram", "YouTube", "LinkedIn", "Facebook"},
	AudienceGenX:        {"Facebook", "LinkedIn", "YouTube", "Instagram"},
	AudienceBoomers:     {"Facebook", "YouTube", "Pinterest"},
}

// defaultPlatforms applies when the audience is missing or unknown.
var defaultPlatforms = []string{"Instagram", "Facebook", "YouTube"}

// tagPlatforms maps interest tags to platforms where that interest is strong.
var tagPlatforms = map[string][]string{
	"technology":              {"LinkedIn", "X", "Reddit"},
	"artificial intelligence": {"LinkedIn", "X", "Reddit"},
	"gaming":                  {"Twitch", "Discord", "YouTube"},
	"fashion":                 {"Instagram", "Pinterest", "TikTok"},
	"art":                     {"Pinterest", "Instagram", "Behance"},
	"design":                  {"Behance", "Pinterest", "Instagram"},
	"photography":             {"Instagram", "Flickr"},
	"music":                   {"SoundCloud", "TikTok", "YouTube"},
	"business":                {"LinkedIn", "X"},
	"entrepreneurship":        {"LinkedIn", "X"},
	"finance":                 {"LinkedIn", "X"},
	"food":                    {"Instagram", "Pinterest", "TikTok"},
	"travel":                  {"Instagram", "YouTube", "Pinterest"},
	"books":                   {"Goodreads", "Instagram"},
	"sports":                  {"Strava", "Instagram", "YouTube"},
	"running":                 {"Strava", "Instagram"},
	"wellness":                {"Instagram", "Pinterest", "YouTube"},
	"film":                    {"Letterboxd", "X", "YouTube"},
	"tv series":               {"X", "Reddit"},
	"sustainability":          {"Instagram", "LinkedIn"},
	"family":                  {"Facebook", "Pinterest"},
	"podcasts":                {"Spotify", "YouTube"},
}

type influencerRule struct {
	keywords []string
	platform string
}

// influencerTable classifies influencer names by the hints they carry.
var influencerTable = []influencerRule{
	{[]string{"tube", "vlog", "youtube"}, "YouTube"},
	{[]string{"tiktok", "tok"}, "TikTok"},
	{[]string{"twitch", "stream", "gaming", "gamer"}, "Twitch"},
	{[]string{"insta", "gram"}, "Instagram"},
	{[]string{"podcast"}, "Spotify"},
	{[]string{"linkedin", "ceo", "founder"}, "LinkedIn"},
}

// MaxPlatforms caps the derived social platform list.
const MaxPlatforms = 5
