package model

// Typed extraction records, one per category. Field names and optionality
// match the JSON the extraction prompt asks for; pointers distinguish "not
// mentioned" from zero values so that nulls never overwrite known attributes
// downstream.

type Band struct {
	Name          string  `json:"name"`
	FormedYear    *int    `json:"formed_year"`
	OriginCity    *string `json:"origin_city"`
	OriginCountry *string `json:"origin_country"`
	Description   string  `json:"description"`
}

type Person struct {
	Name            string   `json:"name"`
	Instruments     []string `json:"instruments"`
	AssociatedBands []string `json:"associated_bands"`
	Description     string   `json:"description"`
}

type Album struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	ReleaseYear *int    `json:"release_year"`
	ReleaseDate *string `json:"release_date"`
	Label       *string `json:"label"`
	Studio      *string `json:"studio"`
	Description string  `json:"description"`
}

type Song struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Album  *string `json:"album"`
	BPM    *int    `json:"bpm"`
}

type Subgenre struct {
	Name               string   `json:"name"`
	EraStart           *int     `json:"era_start"`
	EraEnd             *int     `json:"era_end"`
	BPMMin             *int     `json:"bpm_min"`
	BPMMax             *int     `json:"bpm_max"`
	GuitarTuning       *string  `json:"guitar_tuning"`
	VocalStyle         *string  `json:"vocal_style"`
	KeyCharacteristics string   `json:"key_characteristics"`
	ParentInfluences   []string `json:"parent_influences"`
}

type Location struct {
	City             *string `json:"city"`
	Region           *string `json:"region"`
	Country          string  `json:"country"`
	SceneDescription string  `json:"scene_description"`
}

type Event struct {
	Name        string  `json:"name"`
	Date        *string `json:"date"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

type Equipment struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Specifications *string `json:"specifications"`
}

type Studio struct {
	Name      string  `json:"name"`
	Location  *string `json:"location"`
	FamousFor string  `json:"famous_for"`
}

type Label struct {
	Name        string `json:"name"`
	FoundedYear *int   `json:"founded_year"`
}

// ExtractionResult is the full structured output of one extractor call over
// one chunk.
type ExtractionResult struct {
	Bands         []Band               `json:"bands"`
	People        []Person             `json:"people"`
	Albums        []Album              `json:"albums"`
	Songs         []Song               `json:"songs"`
	Subgenres     []Subgenre           `json:"subgenres"`
	Locations     []Location           `json:"locations"`
	Events        []Event              `json:"events"`
	Equipment     []Equipment          `json:"equipment"`
	Studios       []Studio             `json:"studios"`
	Labels        []Label              `json:"labels"`
	Relationships []RelationshipRecord `json:"relationships"`
}

// Mentions flattens the result into per-mention records for the resolver,
// stamping every mention with the chunk it came from. Attribute bags only
// carry fields that were actually present in the extraction output.
func (r *ExtractionResult) Mentions(chunkID string) []Mention {
	var mentions []Mention
	add := func(cat Category, name string, attrs map[string]any) {
		mentions = append(mentions, Mention{
			Category:     cat,
			Name:         name,
			Attributes:   attrs,
			SourceUnitID: chunkID,
		})
	}

	for _, b := range r.Bands {
		attrs := map[string]any{}
		putInt(attrs, "formed_year", b.FormedYear)
		putString(attrs, "origin_city", b.OriginCity)
		putString(attrs, "origin_country", b.OriginCountry)
		putText(attrs, "description", b.Description)
		add(CategoryBand, b.Name, attrs)
	}
	for _, p := range r.People {
		attrs := map[string]any{}
		putList(attrs, "instruments", p.Instruments)
		putList(attrs, "associated_bands", p.AssociatedBands)
		putText(attrs, "description", p.Description)
		add(CategoryPerson, p.Name, attrs)
	}
	for _, a := range r.Albums {
		attrs := map[string]any{}
		putText(attrs, "artist", a.Artist)
		putInt(attrs, "release_year", a.ReleaseYear)
		putString(attrs, "release_date", a.ReleaseDate)
		putString(attrs, "label", a.Label)
		putString(attrs, "studio", a.Studio)
		putText(attrs, "description", a.Description)
		add(CategoryAlbum, a.Title, attrs)
	}
	for _, s := range r.Songs {
		attrs := map[string]any{}
		putText(attrs, "artist", s.Artist)
		putString(attrs, "album", s.Album)
		putInt(attrs, "bpm", s.BPM)
		add(CategorySong, s.Title, attrs)
	}
	for _, s := range r.Subgenres {
		attrs := map[string]any{}
		putInt(attrs, "era_start", s.EraStart)
		putInt(attrs, "era_end", s.EraEnd)
		putInt(attrs, "bpm_min", s.BPMMin)
		putInt(attrs, "bpm_max", s.BPMMax)
		putString(attrs, "guitar_tuning", s.GuitarTuning)
		putString(attrs, "vocal_style", s.VocalStyle)
		putText(attrs, "key_characteristics", s.KeyCharacteristics)
		putList(attrs, "parent_influences", s.ParentInfluences)
		add(CategorySubgenre, s.Name, attrs)
	}
	for _, l := range r.Locations {
		attrs := map[string]any{}
		putString(attrs, "city", l.City)
		putString(attrs, "region", l.Region)
		putText(attrs, "country", l.Country)
		putText(attrs, "scene_description", l.SceneDescription)
		add(CategoryLocation, l.PrimaryName(), attrs)
	}
	for _, e := range r.Events {
		attrs := map[string]any{}
		putString(attrs, "date", e.Date)
		putText(attrs, "type", e.Type)
		putText(attrs, "description", e.Description)
		add(CategoryEvent, e.Name, attrs)
	}
	for _, e := range r.Equipment {
		attrs := map[string]any{}
		putText(attrs, "type", e.Type)
		putString(attrs, "specifications", e.Specifications)
		add(CategoryEquipment, e.Name, attrs)
	}
	for _, s := range r.Studios {
		attrs := map[string]any{}
		putString(attrs, "location", s.Location)
		putText(attrs, "famous_for", s.FamousFor)
		add(CategoryStudio, s.Name, attrs)
	}
	for _, l := range r.Labels {
		attrs := map[string]any{}
		putInt(attrs, "founded_year", l.FoundedYear)
		add(CategoryLabel, l.Name, attrs)
	}
	return mentions
}

// PrimaryName derives a routable name for a location, which unlike the other
// categories has no dedicated name field. Most specific component wins.
func (l Location) PrimaryName() string {
	if l.City != nil && *l.City != "" {
		return *l.City
	}
	if l.Region != nil && *l.Region != "" {
		return *l.Region
	}
	return l.Country
}

func putInt(attrs map[string]any, key string, v *int) {
	if v != nil {
		attrs[key] = *v
	}
}

func putString(attrs map[string]any, key string, v *string) {
	if v != nil && *v != "" {
		attrs[key] = *v
	}
}

func putText(attrs map[string]any, key, v string) {
	if v != "" {
		attrs[key] = v
	}
}

func putList(attrs map[string]any, key string, v []string) {
	if len(v) > 0 {
		attrs[key] = v
	}
}
