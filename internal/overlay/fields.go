package overlay

// Field is a patient-detail slot stamped onto the first page of a
// fillable consent. Coordinates are PDF points from the bottom-left
// corner of the page.
type Field struct {
	Name string
	X    float64
	Y    float64
}

// Fields is the closed set of stampable fields, in render order. Answer
// keys outside this set are ignored.
var Fields = []Field{
	{Name: "name", X: 110, Y: 478},
	{Name: "address", X: 120, Y: 458},
	{Name: "city", X: 258, Y: 442},
	{Name: "state", X: 360, Y: 442},
	{Name: "zipCode", X: 530, Y: 442},
	{Name: "email", X: 110, Y: 421},
	{Name: "phone", X: 370, Y: 421},
}

// Text styling for stamped answers.
const (
	FontName   = "Helvetica"
	FontPoints = 10
	FillColor  = "#000000"
)

// Placement is one resolved stamp: a field with the text to draw.
type Placement struct {
	Field Field
	Text  string
}

// Plan resolves an answer map into placements. Only known fields with
// non-empty answers produce a placement; order follows Fields, so the
// same answers always yield the same plan.
func Plan(answers map[string]string) []Placement {
	var placements []Placement
	for _, f := range Fields {
		text, ok := answers[f.Name]
		if !ok || text == "" {
			continue
		}
		placements = append(placements, Placement{Field: f, Text: text})
	}
	return placements
}
