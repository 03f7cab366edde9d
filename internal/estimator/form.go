package estimator

import "fmt"

// The numeric values below are the wire encoding the premium model was
// trained on. They are not ordinal and must never be renumbered.

// Sex of the applicant.
type Sex int

const (
	SexFemale Sex = 0
	SexMale   Sex = 1
)

// Smoker status.
type Smoker int

const (
	SmokerNo  Smoker = 0
	SmokerYes Smoker = 1
)

// Disease is the pre-existing condition.
type Disease int

const (
	DiseaseAsthma       Disease = 0
	DiseaseDiabetes     Disease = 1
	DiseaseHeart        Disease = 2
	DiseaseHypertension Disease = 3
	DiseaseMultiple     Disease = 4
	DiseaseNone         Disease = 5
)

// PolicyType is the kind of policy being priced.
type PolicyType int

const (
	PolicyFamilyFloater PolicyType = 0
	PolicyIndividual    PolicyType = 1
	PolicySeniorCitizen PolicyType = 2
)

func (s Sex) String() string {
	switch s {
	case SexFemale:
		return "Female"
	case SexMale:
		return "Male"
	default:
		return fmt.Sprintf("Sex(%d)", int(s))
	}
}

func (s Smoker) String() string {
	switch s {
	case SmokerNo:
		return "Non-Smoker"
	case SmokerYes:
		return "Smoker"
	default:
		return fmt.Sprintf("Smoker(%d)", int(s))
	}
}

func (d Disease) String() string {
	switch d {
	case DiseaseAsthma:
		return "Asthma"
	case DiseaseDiabetes:
		return "Diabetes"
	case DiseaseHeart:
		return "Heart Disease"
	case DiseaseHypertension:
		return "Hypertension"
	case DiseaseMultiple:
		return "Multiple Conditions"
	case DiseaseNone:
		return "None"
	default:
		return fmt.Sprintf("Disease(%d)", int(d))
	}
}

func (p PolicyType) String() string {
	switch p {
	case PolicyFamilyFloater:
		return "Family Floater"
	case PolicyIndividual:
		return "Individual"
	case PolicySeniorCitizen:
		return "Senior Citizen"
	default:
		return fmt.Sprintf("PolicyType(%d)", int(p))
	}
}

// Option orderings as presented in the form. These are display orders
// only; the values carry the wire encoding.
var (
	SexOptions        = []Sex{SexMale, SexFemale}
	SmokerOptions     = []Smoker{SmokerNo, SmokerYes}
	DiseaseOptions    = []Disease{DiseaseNone, DiseaseDiabetes, DiseaseHypertension, DiseaseHeart, DiseaseAsthma, DiseaseMultiple}
	PolicyTypeOptions = []PolicyType{PolicyIndividual, PolicyFamilyFloater, PolicySeniorCitizen}
)

// Range is an advisory bound shown next to a numeric field. Values outside
// it are still submitted.
type Range struct {
	Min, Max, Step float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Hint renders the range for display, e.g. "18-100".
func (r Range) Hint() string {
	if r.Step > 0 && r.Step < 1 {
		return fmt.Sprintf("%.1f-%.1f", r.Min, r.Max)
	}
	return fmt.Sprintf("%g-%g", r.Min, r.Max)
}

var (
	AgeRange      = Range{Min: 18, Max: 100, Step: 1}
	BMIRange      = Range{Min: 10, Max: 50, Step: 0.1}
	ChildrenRange = Range{Min: 0, Max: 10, Step: 1}
)

// FormState is the applicant record submitted to /predict. It is a value
// type: every edit produces a new FormState via the With methods, and the
// estimator swaps the whole value in at once.
type FormState struct {
	Age        int        `json:"age"`
	Sex        Sex        `json:"sex"`
	BMI        float64    `json:"bmi"`
	Children   int        `json:"children"`
	Smoker     Smoker     `json:"smoker"`
	Disease    Disease    `json:"disease"`
	PolicyType PolicyType `json:"policy_type"`
}

// DefaultForm returns the form shown before the user edits anything.
func DefaultForm() FormState {
	return FormState{
		Age:        30,
		Sex:        SexMale,
		BMI:        24,
		Children:   0,
		Smoker:     SmokerNo,
		Disease:    DiseaseNone,
		PolicyType: PolicyIndividual,
	}
}

func (f FormState) WithAge(age int) FormState {
	f.Age = age
	return f
}

func (f FormState) WithSex(s Sex) FormState {
	f.Sex = s
	return f
}

func (f FormState) WithBMI(bmi float64) FormState {
	f.BMI = bmi
	return f
}

func (f FormState) WithChildren(n int) FormState {
	f.Children = n
	return f
}

func (f FormState) WithSmoker(s Smoker) FormState {
	f.Smoker = s
	return f
}

func (f FormState) WithDisease(d Disease) FormState {
	f.Disease = d
	return f
}

func (f FormState) WithPolicyType(p PolicyType) FormState {
	f.PolicyType = p
	return f
}

// OutOfRange lists the fields whose values fall outside their advisory
// ranges. It is informational; nothing rejects such a form.
func (f FormState) OutOfRange() []string {
	var fields []string
	if !AgeRange.Contains(float64(f.Age)) {
		fields = append(fields, "age")
	}
	if !BMIRange.Contains(f.BMI) {
		fields = append(fields, "bmi")
	}
	if !ChildrenRange.Contains(float64(f.Children)) {
		fields = append(fields, "children")
	}
	return fields
}
