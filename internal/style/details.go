package style

// Details is the copy shown to a user once a category is recommended.
type Details struct {
	Name               string
	DisplayName        string
	RecommendedService string
	Tagline            string
	Description        string
	BestFor            []string
	BookingLabel       string
}

var details = map[Category]Details{
	Classic: {
		Name:               "Classic",
		DisplayName:        "Classic Lashes",
		RecommendedService: "Classic Lashes",
		Tagline:            "Effortlessly Natural",
		Description: "You love a natural, polished look that still makes your eyes stand out. " +
			"Classic lashes add length and definition by placing one extension on each natural lash, " +
			"while keeping things soft and effortless.",
		BestFor: []string{
			"First-time extension clients",
			"Natural makeup lovers",
			"Everyday wear",
		},
		BookingLabel: "Book Classic Full Set",
	},
	WetAngel: {
		Name:               "Wet / Angel",
		DisplayName:        "Wet / Angel Lashes",
		RecommendedService: "Wet / Angel Set",
		Tagline:            "Modern & Glossy",
		Description: "You love a modern, clean, model-off-duty look. Wet and Angel sets give you glossy, " +
			"defined lashes that feel natural but elevated, with soft wispy spikes that keep things light and airy.",
		BestFor: []string{
			"You like a soft but noticeable lash look",
			"You love a fresh, dewy vibe",
			"You love a minimal makeup routine",
		},
		BookingLabel: "Book Wet / Angel Set",
	},
	Hybrid: {
		Name:               "Hybrid",
		DisplayName:        "Hybrid Lashes",
		RecommendedService: "Hybrid Lashes",
		Tagline:            "The Perfect Balance",
		Description: "You like your lashes a little fuller and more textured but still soft enough for every day. " +
			"Hybrid lashes blend classic and volume techniques for a balance of texture and fullness.",
		BestFor: []string{
			"You want more fullness than classic, but not too dramatic",
			"You love a fluffy, textured finish",
			"You want a look that transitions easily from day to night",
		},
		BookingLabel: "Book Hybrid Full Set",
	},
	Volume: {
		Name:               "Volume",
		DisplayName:        "Volume Lashes",
		RecommendedService: "Volume Lashes",
		Tagline:            "Bold & Beautiful",
		Description: "You love bold, fluffy lashes that make a statement. " +
			"Volume sets give you maximum fullness and drama for a high-impact look.",
		BestFor: []string{
			"Full glam fans",
			"Sparse natural lashes",
			"You love a dark and full lash line",
		},
		BookingLabel: "Book Volume Full Set",
	},
}

// FinePrint closes every recommendation.
const FinePrint = "Every set is customized to your eye shape and natural lashes. " +
	"Your artist will fine tune during your consultation."

// DetailsFor returns the display details of c.
func DetailsFor(c Category) (Details, bool) {
	d, ok := details[c]
	return d, ok
}
