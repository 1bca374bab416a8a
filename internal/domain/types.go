package domain

type ComponentID string

const (
	ComponentAbout     ComponentID = "about"
	ComponentAddress   ComponentID = "address"
	ComponentBirthdate ComponentID = "birthdate"
)

// FieldPath names a single form field, namespaced by its owning component
// ("address.city"). Account fields are bare ("email", "password").
type FieldPath string

const (
	FieldEmail    FieldPath = "email"
	FieldPassword FieldPath = "password"
)

const (
	StepAccount = 1
	StepCount   = 3

	FirstConfigurablePage = 2
	LastConfigurablePage  = 3
)

type PageConfig struct {
	PageNumber int           `yaml:"page_number" json:"pageNumber"`
	Components []ComponentID `yaml:"components" json:"components"`
}

type Pages struct {
	Pages []PageConfig `yaml:"pages" json:"pages"`
}

func (p Pages) Page(number int) (PageConfig, bool) {
	for _, page := range p.Pages {
		if page.PageNumber == number {
			return page, true
		}
	}
	return PageConfig{}, false
}

func (p Pages) ComponentsOn(number int) []ComponentID {
	page, ok := p.Page(number)
	if !ok {
		return nil
	}
	out := make([]ComponentID, len(page.Components))
	copy(out, page.Components)
	return out
}

// Live reports whether the component is assigned to any page.
func (p Pages) Live(id ComponentID) bool {
	for _, page := range p.Pages {
		for _, c := range page.Components {
			if c == id {
				return true
			}
		}
	}
	return false
}

func (p Pages) Clone() Pages {
	out := Pages{Pages: make([]PageConfig, len(p.Pages))}
	for i, page := range p.Pages {
		components := make([]ComponentID, len(page.Components))
		copy(components, page.Components)
		out.Pages[i] = PageConfig{PageNumber: page.PageNumber, Components: components}
	}
	return out
}
