package requests

// ReconcileDemographics is the caller-supplied identity of the patient on the
// primary system, used as the anchor for the cross-source identity gate.
type ReconcileDemographics struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	BirthDate string `json:"birthDate" validate:"required,birth_date"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other unknown"`
	MRN       string `json:"mrn" validate:"omitempty,max=64"`
}

// Reconcile triggers one pipeline run for a patient. Sources optionally
// restricts the run to a subset of the configured record sources; Force
// bypasses the cached report and always re-runs the pipeline.
type Reconcile struct {
	Demographics ReconcileDemographics `json:"demographics" validate:"required"`
	Sources      []string              `json:"sources" validate:"omitempty,dive,required"`
	Force        bool                  `json:"force"`
}
