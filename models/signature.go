package models

// Signature is a placement field anchored to a page of the document.
// Left/Top/Width/Height are relative to the rendered slide box, in [0,1].
type Signature struct {
	ID                    string  `bson:"id" json:"id"`
	SlideIndex            int     `bson:"slideIndex" json:"slideIndex"`
	Left                  float64 `bson:"left" json:"left"`
	Top                   float64 `bson:"top" json:"top"`
	Width                 float64 `bson:"width" json:"width"`
	Height                float64 `bson:"height" json:"height"`
	Rotation              float64 `bson:"rotation" json:"rotation"`
	RecipientEmail        string  `bson:"recipientEmail" json:"recipientEmail"`
	RecipientsName        string  `bson:"recipientsName" json:"recipientsName"`
	SignatureText         string  `bson:"signatureText,omitempty" json:"signatureText,omitempty"`
	SignatureContent      string  `bson:"signature,omitempty" json:"signature,omitempty"`
	SignatureType         string  `bson:"signatureType,omitempty" json:"signatureType,omitempty"`
	SignatureFontFamily   string  `bson:"signatureFontFamily,omitempty" json:"signatureFontFamily,omitempty"`
	SignatureContentFixed bool    `bson:"signatureContentFixed" json:"signatureContentFixed"`
	SignatureIsEdit       bool    `bson:"signatureIsEdit" json:"signatureIsEdit"`
	SignatureDelete       bool    `bson:"signatureDelete" json:"signatureDelete"`
	// Color is a display tag only; it carries no workflow meaning.
	Color string `bson:"color,omitempty" json:"color,omitempty"`
}
