package estimator

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestWireEncoding(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"female", int(SexFemale), 0},
		{"male", int(SexMale), 1},
		{"non-smoker", int(SmokerNo), 0},
		{"smoker", int(SmokerYes), 1},
		{"asthma", int(DiseaseAsthma), 0},
		{"diabetes", int(DiseaseDiabetes), 1},
		{"heart disease", int(DiseaseHeart), 2},
		{"hypertension", int(DiseaseHypertension), 3},
		{"multiple", int(DiseaseMultiple), 4},
		{"none", int(DiseaseNone), 5},
		{"family floater", int(PolicyFamilyFloater), 0},
		{"individual", int(PolicyIndividual), 1},
		{"senior citizen", int(PolicySeniorCitizen), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s encodes as %d, want %d", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestFormState_JSON(t *testing.T) {
	form := FormState{
		Age:        45,
		Sex:        SexFemale,
		BMI:        27.3,
		Children:   2,
		Smoker:     SmokerYes,
		Disease:    DiseaseHypertension,
		PolicyType: PolicySeniorCitizen,
	}

	data, err := json.Marshal(form)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"age":45,"sex":0,"bmi":27.3,"children":2,"smoker":1,"disease":3,"policy_type":2}`
	if string(data) != want {
		t.Errorf("Marshal = %s\nwant      %s", data, want)
	}
}

func TestFormState_OutOfRangeStillEncodes(t *testing.T) {
	form := DefaultForm().WithAge(150).WithBMI(5).WithChildren(-1)

	if got := form.OutOfRange(); !reflect.DeepEqual(got, []string{"age", "bmi", "children"}) {
		t.Errorf("OutOfRange() = %v", got)
	}

	data, err := json.Marshal(form)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"age":150,"sex":1,"bmi":5,"children":-1,"smoker":0,"disease":5,"policy_type":1}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestDefaultForm(t *testing.T) {
	want := FormState{Age: 30, Sex: SexMale, BMI: 24, Children: 0, Smoker: SmokerNo, Disease: DiseaseNone, PolicyType: PolicyIndividual}
	if got := DefaultForm(); got != want {
		t.Errorf("DefaultForm() = %+v, want %+v", got, want)
	}
	if out := DefaultForm().OutOfRange(); len(out) != 0 {
		t.Errorf("default form should be in range, got %v", out)
	}
}

func TestWithMethodsReturnNewValue(t *testing.T) {
	original := DefaultForm()
	edited := original.
		WithAge(60).
		WithSex(SexFemale).
		WithBMI(31.5).
		WithChildren(3).
		WithSmoker(SmokerYes).
		WithDisease(DiseaseMultiple).
		WithPolicyType(PolicyFamilyFloater)

	if original != DefaultForm() {
		t.Errorf("With methods mutated the receiver: %+v", original)
	}
	want := FormState{Age: 60, Sex: SexFemale, BMI: 31.5, Children: 3, Smoker: SmokerYes, Disease: DiseaseMultiple, PolicyType: PolicyFamilyFloater}
	if edited != want {
		t.Errorf("edited = %+v, want %+v", edited, want)
	}
}

func TestOptionListsCoverEveryValue(t *testing.T) {
	if len(SexOptions) != 2 || len(SmokerOptions) != 2 || len(DiseaseOptions) != 6 || len(PolicyTypeOptions) != 3 {
		t.Fatal("option lists must cover every encoded value exactly once")
	}
	seen := map[Disease]bool{}
	for _, d := range DiseaseOptions {
		seen[d] = true
	}
	for d := DiseaseAsthma; d <= DiseaseNone; d++ {
		if !seen[d] {
			t.Errorf("DiseaseOptions is missing %v", d)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	if DiseaseHeart.String() != "Heart Disease" || PolicyFamilyFloater.String() != "Family Floater" {
		t.Error("unexpected display names")
	}
	if Disease(9).String() != "Disease(9)" {
		t.Errorf("unknown disease = %q", Disease(9).String())
	}
}

func TestRangeHint(t *testing.T) {
	if got := AgeRange.Hint(); got != "18-100" {
		t.Errorf("AgeRange.Hint() = %q", got)
	}
	if got := BMIRange.Hint(); got != "10.0-50.0" {
		t.Errorf("BMIRange.Hint() = %q", got)
	}
}
