package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReconciliationRun is the persisted audit document of one completed run.
type ReconciliationRun struct {
	ID        primitive.ObjectID   `json:"-" bson:"_id,omitempty"`
	RunID     string               `json:"runId" bson:"run_id"`
	PatientID string               `json:"patientId" bson:"patient_id"`
	CreatedAt time.Time            `json:"createdAt" bson:"created_at"`
	Report    ReconciliationReport `json:"report" bson:"report"`
}
