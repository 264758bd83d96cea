package provider

import "encoding/json"

// Wire types for POST payment_links. Field names follow the provider's API.

type linkPayload struct {
	MerchantReference string         `json:"identificadorEnlaceComercio"`
	ProductName       string         `json:"nombreProducto"`
	MaxInstallments   string         `json:"cantidadMaximaCuotas"`
	PaymentMethods    paymentMethods `json:"formaPago"`
	ProductInfo       productInfo    `json:"infoProducto"`
	Settings          linkSettings   `json:"configuracion"`
	Validity          linkValidity   `json:"vigencia"`
	Amount            int64          `json:"monto"`
}

type paymentMethods struct {
	AllowCard                bool `json:"permitirTarjetaCreditoDebido"`
	AllowAgricolaPoints      bool `json:"permitirPagoConPuntoAgricola"`
	AllowAgricolaInstallment bool `json:"permitirPagoEnCuotasAgricola"`
}

type productInfo struct {
	Description string `json:"descripcionProducto"`
	ImageURL    string `json:"urlImagenProducto,omitempty"`
}

type linkSettings struct {
	RedirectURL          string `json:"urlRedirect"`
	ReturnURL            string `json:"urlRetorno"`
	WebhookURL           string `json:"urlWebhook"`
	NotificationEmails   string `json:"emailsNotificacion,omitempty"`
	DefaultQuantity      int    `json:"cantidadPorDefecto"`
	AttemptWindowMinutes int    `json:"duracionInterfazIntentoMinutos"`
	EditableAmount       bool   `json:"esMontoEditable"`
	EditableQuantity     bool   `json:"esCantidadEditable"`
	NotifyCustomer       bool   `json:"notificarTransaccionCliente"`
}

type linkValidity struct {
	StartsAt string `json:"fechaInicio"`
	EndsAt   string `json:"fechaFin"`
}

// linkResponse accepts both response layouts the provider has used: a flat
// object, and a JSON:API style document wrapped in "data".
type linkResponse struct {
	Data *struct {
		Attributes *struct {
			CheckoutURL string `json:"checkout_url"`
			QRCodeURL   string `json:"qr_code_url"`
		} `json:"attributes"`
		ID  flexID `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
	LinkURL   string `json:"urlEnlace"`
	QRCodeURL string `json:"urlQrCodeEnlace"`
	LinkID    flexID `json:"idEnlace"`
}

func (r linkResponse) link() Link {
	link := Link{
		ID:        string(r.LinkID),
		URL:       r.LinkURL,
		QRCodeURL: r.QRCodeURL,
	}

	if r.Data != nil {
		if link.ID == "" {
			link.ID = string(r.Data.ID)
		}
		if r.Data.Attributes != nil {
			if link.URL == "" {
				link.URL = r.Data.Attributes.CheckoutURL
			}
			if link.QRCodeURL == "" {
				link.QRCodeURL = r.Data.Attributes.QRCodeURL
			}
		}
		if link.URL == "" {
			link.URL = r.Data.URL
		}
	}

	return link
}

// flexID decodes identifiers the provider sends either as strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := string(b)
	switch {
	case s == "null":
		*f = ""
	case len(s) >= 2 && s[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = flexID(str)
	default:
		*f = flexID(s)
	}
	return nil
}
