package atlas

// Asset paths, resolved relative to the working directory by whoever opens
// them.
const (
	DiagramImagePath  = "Lung.png"
	ResearchPaperPath = "Lungs_resarch_ppr.pdf"
)

const (
	physioLungAnatomy = "https://www.physio-pedia.com/Lung_Anatomy"
	radiopaediaLeft   = "https://radiopaedia.org/articles/left-lung"
	videoLungs        = "https://youtu.be/bak30LFY3r8?feature=shared"
	videoBronchi      = "https://youtu.be/WbmCi-yo-44?feature=shared"
)

var lungRegions = []Region{
	{
		Name:         "Right Upper Lobe",
		Description:  "The superior lobe of the right lung, containing 3 segments. It's involved in upper chest breathing.",
		LearnMoreURL: physioLungAnatomy,
		VideoURL:     videoLungs,
		Position:     Rect{Left: 30, Top: 20, Width: 15, Height: 20},
	},
	{
		Name:         "Right Middle Lobe",
		Description:  "Located between upper and lower lobes of the right lung, containing 2 segments.",
		LearnMoreURL: physioLungAnatomy,
		VideoURL:     videoLungs,
		Position:     Rect{Left: 26, Top: 43, Width: 15, Height: 19},
	},
	{
		Name:         "Right Lower Lobe",
		Description:  "The inferior lobe of the right lung, containing 5 segments. Important for deep breathing.",
		LearnMoreURL: physioLungAnatomy,
		VideoURL:     videoLungs,
		Position:     Rect{Left: 25, Top: 62, Width: 15, Height: 20},
	},
	{
		Name:         "Left Upper Lobe",
		Description:  "The superior lobe of the left lung, slightly smaller due to heart position.",
		LearnMoreURL: radiopaediaLeft,
		VideoURL:     videoLungs,
		Position:     Rect{Left: 55, Top: 20, Width: 15, Height: 20},
	},
	{
		Name:         "Left Lower Lobe",
		Description:  "The inferior lobe of the left lung, essential for deep breathing exercises.",
		LearnMoreURL: radiopaediaLeft,
		VideoURL:     videoLungs,
		Position:     Rect{Left: 55, Top: 65, Width: 15, Height: 17},
	},
	{
		Name:         "Trachea",
		Description:  "The windpipe, connecting the larynx to the bronchi of the lungs.",
		LearnMoreURL: "https://en.wikipedia.org/wiki/Trachea",
		VideoURL:     "https://youtu.be/RiKIC5of8qM?feature=shared",
		Position:     Rect{Left: 45, Top: 5, Width: 10, Height: 40},
	},
	{
		Name:         "Primary Bronchi",
		Description:  "Main airways that branch from the trachea into each lung.",
		LearnMoreURL: "https://my.clevelandclinic.org/health/body/21607-bronchi",
		VideoURL:     videoBronchi,
		Position:     Rect{Left: 45, Top: 45, Width: 5, Height: 5},
	},
	{
		Name: "Bronchioles",
		Description: "Smaller branches of the bronchial airways that lack cartilage. Terminal bronchioles lead to " +
			"respiratory bronchioles and ultimately to alveoli. They control airflow through smooth muscle contraction.",
		LearnMoreURL: "https://en.wikipedia.org/wiki/Bronchiole",
		VideoURL:     videoBronchi,
		Position:     Rect{Left: 50, Top: 55, Width: 5, Height: 10},
	},
	{
		Name: "Alveoli",
		Description: "Tiny, grape-like air sacs (about 300 million in adult lungs) where gas exchange occurs. " +
			"Their thin walls (one cell thick) and large surface area (70-100 m²) allow oxygen to enter the blood " +
			"and carbon dioxide to be expelled. Surfactant reduces surface tension to prevent collapse.",
		LearnMoreURL: "https://www.verywellhealth.com/what-are-alveoli-2249043",
		VideoURL:     "https://youtu.be/DujNzsM6VLs?feature=shared",
		Position:     Rect{Left: 60, Top: 55, Width: 10, Height: 10},
	},
}

var lungResources = []Resource{
	{
		Title:   "Educational Presentation",
		Summary: "View our comprehensive Canva presentation on lung anatomy",
		URL: "https://www.canva.com/design/DAGeD8gpiGA/SA7ZZi9GSBZnJdJXQlw_1w/edit" +
			"?utm_content=DAGeD8gpiGA&utm_campaign=designshare&utm_medium=link2&utm_source=sharebutton",
		Kind: ResourcePresentation,
	},
	{
		Title:   "Research Paper",
		Summary: "Check the latest research on pulmonary anatomy and function",
		URL:     ResearchPaperPath,
		Kind:    ResourceDocument,
	},
}

var defaultCatalog = New("Interactive Lung Anatomy", lungRegions, lungResources)

// Default returns the compiled-in lung anatomy catalog. The same *Catalog is
// returned on every call.
func Default() *Catalog {
	return defaultCatalog
}
