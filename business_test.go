package adminclient_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient"
	"github.com/municipio-ibarra/adminclient/core/httpclient"
)

const businessPage = `{
	"page": 1,
	"size": 10,
	"totalElements": 1,
	"totalPages": 1,
	"content": [{
		"id": 9,
		"commercialName": "Panadería Central",
		"representativeName": "María",
		"cedulaOrRuc": "1002003001",
		"acceptsWhatsappOrders": true,
		"deliveryService": "BAJO_PEDIDO",
		"salePlace": "LOCAL",
		"validationStatus": "pendiente",
		"user": {"id": 4, "name": "María", "email": "m@x.ec", "identification": "100"},
		"category": {"id": 2, "name": "Alimentos", "description": null}
	}]
}`

func TestBusinessPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		path    string
		wantRaw string
		call    func(*adminclient.Client) httpclient.Response[adminclient.Page[adminclient.Business]]
	}{
		{"list is one-based", "/business/public-list-by-category", "page=1&size=10",
			func(c *adminclient.Client) httpclient.Response[adminclient.Page[adminclient.Business]] {
				return c.ListBusinesses(ctx, adminclient.PageRequest{}, "")
			}},
		{"list with category", "/business/public-list-by-category", "category=Alimentos&page=3&size=5",
			func(c *adminclient.Client) httpclient.Response[adminclient.Page[adminclient.Business]] {
				return c.ListBusinesses(ctx, adminclient.PageRequest{Page: 2, Size: 5}, "Alimentos")
			}},
		{"pending", "/business/pending", "page=1&size=10",
			func(c *adminclient.Client) httpclient.Response[adminclient.Page[adminclient.Business]] {
				return c.PendingBusinesses(ctx, adminclient.PageRequest{Page: -4})
			}},
		{"search", "/business/search", "page=2&q=pan&size=10",
			func(c *adminclient.Client) httpclient.Response[adminclient.Page[adminclient.Business]] {
				return c.SearchBusinesses(ctx, "pan", adminclient.PageRequest{Page: 1})
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				assert.Equal(t, tt.wantRaw, r.URL.RawQuery)
				writeJSON(w, http.StatusOK, businessPage)
			})

			res := tt.call(c)
			require.True(t, res.Success, res.Error)
			require.Len(t, res.Data.Content, 1)
			b := res.Data.Content[0]
			assert.Equal(t, int64(9), b.ID)
			assert.Equal(t, "Panadería Central", b.CommercialName)
			assert.Equal(t, adminclient.BusinessPending, b.Status())
			require.NotNil(t, b.Category)
			assert.Equal(t, "Alimentos", b.Category.Name)
			assert.Empty(t, b.Category.Description)
		})
	}
}

func TestBusinessEndpoints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var (
		mu   sync.Mutex
		seen []string
	)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/business/categories":
			writeJSON(w, http.StatusOK, `[{"id":1,"name":"Artesanías"},{"id":2,"name":"Alimentos"}]`)
		case "/business/stats":
			writeJSON(w, http.StatusOK, `{"total":8,"pending":2,"approved":5,"rejected":1}`)
		case "/business/404":
			writeJSON(w, http.StatusNotFound, `{"message":"Negocio no encontrado"}`)
		default:
			writeJSON(w, http.StatusOK, `{"id":9,"commercialName":"Panadería Central","validationStatus":"APPROVED"}`)
		}
	})

	assert.True(t, c.GetBusiness(ctx, 9).Success)
	assert.True(t, c.ValidateBusinessAccess(ctx, 9))
	assert.False(t, c.ValidateBusinessAccess(ctx, 404))
	assert.True(t, c.CreateBusiness(ctx, adminclient.BusinessInput{CommercialName: "Panadería Central"}).Success)
	assert.True(t, c.UpdateBusiness(ctx, 9, adminclient.BusinessInput{CommercialName: "Panadería"}).Success)
	assert.True(t, c.DeleteBusiness(ctx, 9).Success)

	approved := c.ApproveBusiness(ctx, 9)
	require.True(t, approved.Success)
	assert.Equal(t, adminclient.BusinessApproved, approved.Data.Status())
	assert.True(t, c.RejectBusiness(ctx, 9).Success)
	assert.True(t, c.RejectBusinessWithObservation(ctx, 9, "RUC inválido").Success)

	cats := c.BusinessCategories(ctx)
	require.True(t, cats.Success)
	require.Len(t, cats.Data, 2)
	assert.Equal(t, "Alimentos", cats.Data[1].Name)

	stats := c.BusinessStats(ctx)
	require.True(t, stats.Success)
	assert.Equal(t, adminclient.BusinessStats{Total: 8, Pending: 2, Approved: 5, Rejected: 1}, stats.Data)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /business/9",
		"GET /business/9",
		"GET /business/404",
		"POST /business/create",
		"PUT /business/9",
		"DELETE /business/9",
		"POST /business/approve/9",
		"POST /business/reject/9",
		"POST /business/reject/9",
		"GET /business/categories",
		"GET /business/stats",
	}, seen)
}

func TestApproveBusinessUnexpectedBody(t *testing.T) {
	t.Parallel()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/business/approve/42", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"id":"42","commercialName":"Tienda","message":"Negocio aprobado"}`)
	})
	signIn(t, c)

	res := c.ApproveBusiness(context.Background(), 42)
	require.True(t, res.Success, "an accepted approval is never reported as failed")
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Empty(t, res.Kind)
	assert.Equal(t, "Negocio aprobado", res.Message)
	assert.Equal(t, "Tienda", res.Data.CommercialName)
	assert.Zero(t, res.Data.ID)
}

func TestUploadBusinessDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("multipart upload", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/business/9/upload-document", r.URL.Path)
			assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
			if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
				return
			}
			assert.Equal(t, "logo", r.FormValue("documentType"))

			f, hdr, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				return
			}
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "logo.png", hdr.Filename)
			assert.Equal(t, "PNGDATA", string(data))

			writeJSON(w, http.StatusOK, `{"url":"https://cdn.example/logo.png"}`)
		})

		res := c.UploadBusinessDocument(ctx, 9, adminclient.DocumentUpload{
			Type:        adminclient.DocumentLogo,
			Filename:    "logo.png",
			ContentType: "image/png",
			Content:     strings.NewReader("PNGDATA"),
		})
		require.True(t, res.Success, res.Error)
		assert.Equal(t, "https://cdn.example/logo.png", res.Data.URL)
		assert.Equal(t, "Documento subido exitosamente", res.Message)
	})

	t.Run("rejected by server", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusRequestEntityTooLarge, `{"message":"Archivo muy grande"}`)
		})
		res := c.UploadBusinessDocument(ctx, 9, adminclient.DocumentUpload{
			Type:    adminclient.DocumentCedula,
			Content: strings.NewReader("x"),
		})
		require.False(t, res.Success)
		assert.Equal(t, "Archivo muy grande", res.Error)
		assert.Equal(t, "Error subiendo documento", res.Message)
	})

	t.Run("invalid type", func(t *testing.T) {
		t.Parallel()
		called := false
		c := newClient(t, func(http.ResponseWriter, *http.Request) { called = true })
		res := c.UploadBusinessDocument(ctx, 9, adminclient.DocumentUpload{
			Type:    "passport",
			Content: strings.NewReader("x"),
		})
		require.False(t, res.Success)
		assert.Equal(t, httpclient.KindInvalidRequest, res.Kind)
		assert.Equal(t, "Tipo de documento inválido: passport", res.Error)
		assert.False(t, called)
	})
}

func TestNormalizeValidationStatus(t *testing.T) {
	t.Parallel()
	tests := map[string]adminclient.ValidationStatus{
		"":          adminclient.BusinessPending,
		"pending":   adminclient.BusinessPending,
		"PENDIENTE": adminclient.BusinessPending,
		"approved":  adminclient.BusinessApproved,
		" Aprobado": adminclient.BusinessApproved,
		"REJECTED":  adminclient.BusinessRejected,
		"rechazado": adminclient.BusinessRejected,
		"archived":  adminclient.BusinessPending,
	}
	for in, want := range tests {
		assert.Equal(t, want, adminclient.NormalizeValidationStatus(in), in)
	}
}
