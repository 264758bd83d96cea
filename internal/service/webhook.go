package service

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Outcome is the canonical result of a provider webhook event
type Outcome string

const (
	OutcomeUnhandled Outcome = "unhandled"
	OutcomeApproved  Outcome = "approved"
	OutcomeDeclined  Outcome = "declined"
	OutcomeFailed    Outcome = "failed"
)

// Shape identifies which of the provider's payload layouts carried the reference
type Shape string

const (
	// ShapeEvent is {event, data:{reference, id, reason, error}}
	ShapeEvent Shape = "event"
	// ShapeEvento is {Evento, Datos:{IdentificadorEnlaceComercio, IdTransaccion, Razon, Error}}
	ShapeEvento Shape = "evento"
	// ShapeResultado is {ResultadoTransaccion, EnlacePago:{IdentificadorEnlaceComercio}, IdTransaccion}
	ShapeResultado Shape = "resultado"
)

var outcomeTokens = map[string]Outcome{
	"transaction.approved": OutcomeApproved,
	"TransaccionAprobada":  OutcomeApproved,
	"ExitosaAprobada":      OutcomeApproved,

	"transaction.declined": OutcomeDeclined,
	"TransaccionDeclinada": OutcomeDeclined,
	"ExitosaDeclinada":     OutcomeDeclined,

	"transaction.failed": OutcomeFailed,
	"TransaccionFallida": OutcomeFailed,
	"Fallida":            OutcomeFailed,
}

// CanonicalOutcome maps a provider event token to its canonical outcome.
// Unknown tokens map to OutcomeUnhandled.
func CanonicalOutcome(kind string) Outcome {
	if outcome, ok := outcomeTokens[strings.TrimSpace(kind)]; ok {
		return outcome
	}
	return OutcomeUnhandled
}

// WebhookEvent is a provider callback normalized across payload shapes
type WebhookEvent struct {
	Reference             string
	Kind                  string
	Outcome               Outcome
	Shape                 Shape
	ProviderTransactionID string
	Reason                string
	Error                 string
}

type jsonObject map[string]json.RawMessage

// NormalizeWebhook extracts the canonical event from a raw webhook body.
// Bodies that are not a JSON object, or that carry no reference in any known
// layout, fail with missing_reference.
func NormalizeWebhook(body []byte) (*WebhookEvent, error) {
	var root jsonObject
	if err := json.Unmarshal(body, &root); err != nil || root == nil {
		return nil, missingReferenceError()
	}

	data := root.object("data")
	datos := root.object("Datos")
	enlace := root.object("EnlacePago")

	event := &WebhookEvent{}

	switch {
	case data.scalar("reference") != "":
		event.Reference = data.scalar("reference")
		event.Shape = ShapeEvent
	case datos.scalar("IdentificadorEnlaceComercio") != "":
		event.Reference = datos.scalar("IdentificadorEnlaceComercio")
		event.Shape = ShapeEvento
	case enlace.scalar("IdentificadorEnlaceComercio") != "":
		event.Reference = enlace.scalar("IdentificadorEnlaceComercio")
		event.Shape = ShapeResultado
	default:
		return nil, missingReferenceError()
	}

	event.Kind = firstNonEmpty(root.scalar("event"), root.scalar("Evento"), root.scalar("ResultadoTransaccion"))
	event.Outcome = CanonicalOutcome(event.Kind)
	event.ProviderTransactionID = firstNonEmpty(data.scalar("id"), datos.scalar("IdTransaccion"), root.scalar("IdTransaccion"))
	event.Reason = firstNonEmpty(data.scalar("reason"), datos.scalar("Razon"))
	event.Error = firstNonEmpty(data.scalar("error"), datos.scalar("Error"))

	return event, nil
}

func missingReferenceError() *ServiceError {
	return &ServiceError{
		Code:    ErrCodeMissingReference,
		Message: "webhook payload does not carry a transaction reference",
	}
}

// object returns the nested object stored under name, or nil
func (o jsonObject) object(name string) jsonObject {
	raw, ok := o[name]
	if !ok {
		return nil
	}
	var nested jsonObject
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil
	}
	return nested
}

// scalar returns the trimmed string or number stored under name. Other JSON
// types read as empty.
func (o jsonObject) scalar(name string) string {
	raw, ok := o[name]
	if !ok {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch {
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
