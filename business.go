package adminclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/municipio-ibarra/adminclient/core/httpclient"
	"github.com/municipio-ibarra/adminclient/core/i18n"
	"github.com/municipio-ibarra/adminclient/core/logger"
)

// ValidationStatus is the review state of a business.
type ValidationStatus string

const (
	BusinessPending  ValidationStatus = "PENDING"
	BusinessApproved ValidationStatus = "APPROVED"
	BusinessRejected ValidationStatus = "REJECTED"
)

// NormalizeValidationStatus maps English and Spanish spellings in any case to a
// ValidationStatus. Unknown or empty values are pending.
func NormalizeValidationStatus(s string) ValidationStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "APPROVED", "APROBADO":
		return BusinessApproved
	case "REJECTED", "RECHAZADO":
		return BusinessRejected
	default:
		return BusinessPending
	}
}

// Category is a business category.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BusinessOwner is the account that registered a business.
type BusinessOwner struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Identification string `json:"identification"`
}

// BusinessInput holds the writable business fields.
type BusinessInput struct {
	CommercialName        string `json:"commercialName"`
	RepresentativeName    string `json:"representativeName"`
	CedulaOrRuc           string `json:"cedulaOrRuc"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email"`
	ParishCommunitySector string `json:"parishCommunitySector,omitempty"`
	Facebook              string `json:"facebook,omitempty"`
	Instagram             string `json:"instagram,omitempty"`
	Tiktok                string `json:"tiktok,omitempty"`
	Website               string `json:"website,omitempty"`
	Description           string `json:"description,omitempty"`
	ProductsServices      string `json:"productsServices,omitempty"`
	AcceptsWhatsappOrders bool   `json:"acceptsWhatsappOrders"`
	// BAJO_PEDIDO, DISPONIBLE or NO_DISPONIBLE.
	DeliveryService string `json:"deliveryService,omitempty"`
	// FERIAS, LOCAL, DOMICILIO or ONLINE.
	SalePlace           string `json:"salePlace,omitempty"`
	ReceivedUdelSupport *bool  `json:"receivedUdelSupport,omitempty"`
	UdelSupportDetails  string `json:"udelSupportDetails,omitempty"`
	CategoryID          int64  `json:"categoryId,omitempty"`
}

// Business is a registered commercial premises.
type Business struct {
	BusinessInput

	ID               int64            `json:"id"`
	SignatureURL     string           `json:"signatureUrl,omitempty"`
	RegistrationDate string           `json:"registrationDate,omitempty"`
	CedulaFileURL    string           `json:"cedulaFileUrl,omitempty"`
	LogoURL          string           `json:"logoUrl,omitempty"`
	ValidationStatus ValidationStatus `json:"validationStatus"`
	User             *BusinessOwner   `json:"user,omitempty"`
	Category         *Category        `json:"category,omitempty"`
}

// Status returns the normalized validation status.
func (b Business) Status() ValidationStatus {
	return NormalizeValidationStatus(string(b.ValidationStatus))
}

// BusinessStats are the business review counters.
type BusinessStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// DocumentType names an uploadable business document.
type DocumentType string

const (
	DocumentCedula    DocumentType = "cedula"
	DocumentLogo      DocumentType = "logo"
	DocumentSignature DocumentType = "signature"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentCedula, DocumentLogo, DocumentSignature:
		return true
	}
	return false
}

// DocumentUpload is one file to attach to a business.
type DocumentUpload struct {
	Type        DocumentType
	Filename    string
	ContentType string
	Content     io.Reader
}

// UploadResult is the server's answer to a document upload.
type UploadResult struct {
	URL string `json:"url"`
}

// ListBusinesses lists public businesses, optionally in one category.
func (c *Client) ListBusinesses(ctx context.Context, page PageRequest, category string) httpclient.Response[Page[Business]] {
	q := page.query(OneBased)
	if category != "" {
		q.Set("category", category)
	}
	return httpclient.Get[Page[Business]](ctx, c.http, "/business/public-list-by-category", q)
}

// PendingBusinesses lists businesses awaiting review.
func (c *Client) PendingBusinesses(ctx context.Context, page PageRequest) httpclient.Response[Page[Business]] {
	return httpclient.Get[Page[Business]](ctx, c.http, "/business/pending", page.query(OneBased))
}

// SearchBusinesses runs a free-text search.
func (c *Client) SearchBusinesses(ctx context.Context, query string, page PageRequest) httpclient.Response[Page[Business]] {
	q := page.query(OneBased)
	q.Set("q", query)
	return httpclient.Get[Page[Business]](ctx, c.http, "/business/search", q)
}

// GetBusiness fetches one business.
func (c *Client) GetBusiness(ctx context.Context, id int64) httpclient.Response[Business] {
	return httpclient.Get[Business](ctx, c.http, businessPath(id), nil)
}

// ValidateBusinessAccess reports whether the business exists and is visible to
// the current session.
func (c *Client) ValidateBusinessAccess(ctx context.Context, id int64) bool {
	return c.GetBusiness(ctx, id).Success
}

// CreateBusiness registers a business.
func (c *Client) CreateBusiness(ctx context.Context, in BusinessInput) httpclient.Response[Business] {
	return httpclient.Post[Business](ctx, c.http, "/business/create", in)
}

// UpdateBusiness replaces the writable fields of a business.
func (c *Client) UpdateBusiness(ctx context.Context, id int64, in BusinessInput) httpclient.Response[Business] {
	return httpclient.Put[Business](ctx, c.http, businessPath(id), in)
}

// DeleteBusiness removes a business.
func (c *Client) DeleteBusiness(ctx context.Context, id int64) httpclient.Response[MessageResult] {
	return httpclient.Delete[MessageResult](ctx, c.http, businessPath(id), nil)
}

// ApproveBusiness approves a pending business.
func (c *Client) ApproveBusiness(ctx context.Context, id int64) httpclient.Response[Business] {
	return httpclient.Post[Business](ctx, c.http, "/business/approve/"+strconv.FormatInt(id, 10), nil)
}

// RejectBusiness rejects a pending business.
func (c *Client) RejectBusiness(ctx context.Context, id int64) httpclient.Response[Business] {
	return httpclient.Post[Business](ctx, c.http, "/business/reject/"+strconv.FormatInt(id, 10), nil)
}

// RejectBusinessWithObservation rejects a business and records the reviewer note.
func (c *Client) RejectBusinessWithObservation(ctx context.Context, id int64, observation string) httpclient.Response[MessageResult] {
	return httpclient.Post[MessageResult](ctx, c.http, "/business/reject/"+strconv.FormatInt(id, 10), newObservation(observation))
}

// BusinessCategories lists the available categories.
func (c *Client) BusinessCategories(ctx context.Context) httpclient.Response[[]Category] {
	return httpclient.Get[[]Category](ctx, c.http, "/business/categories", nil)
}

// BusinessStats fetches the business review counters.
func (c *Client) BusinessStats(ctx context.Context) httpclient.Response[BusinessStats] {
	return httpclient.Get[BusinessStats](ctx, c.http, "/business/stats", nil)
}

// UploadBusinessDocument attaches a file to a business as multipart form data.
func (c *Client) UploadBusinessDocument(ctx context.Context, id int64, doc DocumentUpload) httpclient.Response[UploadResult] {
	if !doc.Type.Valid() {
		msg := c.http.T(i18n.MsgInvalidDocType, i18n.M{"type": string(doc.Type)})
		return httpclient.Failure[UploadResult](httpclient.KindInvalidRequest, msg, c.http.T(i18n.MsgUploadFailed))
	}

	filename := doc.Filename
	if filename == "" {
		filename = string(doc.Type)
	}
	r := httpclient.Do[UploadResult](ctx, c.http, httpclient.Request{
		Method:   http.MethodPost,
		Endpoint: businessPath(id) + "/upload-document",
		Timeout:  c.cfg.UploadTimeout,
		Body: &httpclient.Multipart{
			Fields: map[string]string{"documentType": string(doc.Type)},
			Files: []httpclient.FilePart{{
				Field:       "file",
				Filename:    filename,
				ContentType: doc.ContentType,
				Content:     doc.Content,
			}},
		},
	})

	if r.Success {
		r.Message = c.http.T(i18n.MsgUploadSuccess)
		c.log.InfoContext(ctx, "business document uploaded",
			logger.Action("upload_document"),
			logger.Key("business_id", id),
			logger.Key("document_type", string(doc.Type)),
		)
	} else if r.Kind == httpclient.KindHTTP {
		r.Message = c.http.T(i18n.MsgUploadFailed)
	}
	return r
}

func businessPath(id int64) string {
	return "/business/" + url.PathEscape(strconv.FormatInt(id, 10))
}
