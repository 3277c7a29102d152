package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jhoicas/catalogo-api/docs"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la app completa sobre una base SQLite en memoria.
func buildTestApp(t *testing.T, stripUnknown bool) *fiber.App {
	t.Helper()
	return buildTestAppWithLogger(t, stripUnknown, logger.Nop())
}

func buildTestAppWithLogger(t *testing.T, stripUnknown bool, log *logger.Logger) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	categoryUC := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db), usecase.CategoryOptions{})
	productUC := usecase.NewProductUseCase(sqlite.NewProductRepository(db), categoryUC)
	return apphttp.NewApp(apphttp.ServerConfig{
		Name:    "catalogo-api-test",
		Version: "test",
		Logger:  log,
	}, apphttp.RouterDeps{
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		Validator:  validation.New(validation.Options{StripUnknown: stripUnknown}),
	})
}

// doRequest lanza la petición y devuelve status y cuerpo.
func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func createCategory(t *testing.T, app *fiber.App, body string) dto.CategoryResponse {
	t.Helper()
	status, raw := doRequest(t, app, http.MethodPost, "/api/categories", body)
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	return decode[dto.CategoryResponse](t, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t, true)
	status, raw := doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, status)
	health := decode[dto.HealthResponse](t, raw)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "catalogo-api-test", health.Service)
}

func TestDocs(t *testing.T) {
	app := buildTestApp(t, true)
	status, _ := doRequest(t, app, http.MethodGet, "/docs", "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestCategories_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t, true)

	root := createCategory(t, app, `{"name":"Resto-Bar","slug":"resto-bar"}`)
	assert.Nil(t, root.ParentID)
	pizzas := createCategory(t, app, `{"name":"Pizzas","slug":"pizzas","parentId":"`+root.ID+`"}`)

	status, raw := doRequest(t, app, http.MethodPost, "/api/categories", `{"name":"Pizzas 2","slug":"pizzas"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	errBody := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "CONFLICT", errBody.Code)
	assert.Equal(t, "Category with slug 'pizzas' already exists", errBody.Message)
	assert.Equal(t, "/api/categories", errBody.Path)
	assert.Equal(t, http.MethodPost, errBody.Method)
	assert.Equal(t, fiber.StatusConflict, errBody.StatusCode)

	status, raw = doRequest(t, app, http.MethodGet, "/api/categories/"+root.ID, "")
	require.Equal(t, fiber.StatusOK, status)
	got := decode[dto.CategoryResponse](t, raw)
	assert.Equal(t, 1, got.ChildrenCount)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "pizzas", got.Children[0].Slug)

	status, raw = doRequest(t, app, http.MethodGet, "/api/categories/slug/pizzas", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, pizzas.ID, decode[dto.CategoryResponse](t, raw).ID)

	status, raw = doRequest(t, app, http.MethodGet, "/api/categories/"+root.ID+"/children", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]dto.CategoryResponse](t, raw), 1)

	status, raw = doRequest(t, app, http.MethodPatch, "/api/categories/"+pizzas.ID, `{"parentId":"`+pizzas.ID+`"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "A category cannot be its own parent", decode[dto.ErrorResponse](t, raw).Message)

	status, raw = doRequest(t, app, http.MethodDelete, "/api/categories/"+root.ID, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Cannot delete category with 1 subcategories", decode[dto.ErrorResponse](t, raw).Message)

	status, raw = doRequest(t, app, http.MethodPatch, "/api/categories/"+pizzas.ID, `{"parentId":null}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))
	assert.Nil(t, decode[dto.CategoryResponse](t, raw).ParentID)

	status, _ = doRequest(t, app, http.MethodDelete, "/api/categories/"+pizzas.ID, "")
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = doRequest(t, app, http.MethodDelete, "/api/categories/"+root.ID, "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, raw = doRequest(t, app, http.MethodGet, "/api/categories", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decode[[]dto.CategoryResponse](t, raw))
}

func TestCategories_ErroresDeValidacion(t *testing.T) {
	app := buildTestApp(t, false)

	status, raw := doRequest(t, app, http.MethodPost, "/api/categories", `{"name":"ab","slug":"Mal Slug","color":"rojo"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	body := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	paths := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		paths = append(paths, d.Path)
	}
	assert.ElementsMatch(t, []string{"name", "slug", "color"}, paths)

	status, raw = doRequest(t, app, http.MethodGet, "/api/categories/no-es-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "id", decode[dto.ErrorResponse](t, raw).Details[0].Path)

	status, raw = doRequest(t, app, http.MethodGet, "/api/categories/"+uuid.New().String(), "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = doRequest(t, app, http.MethodGet, "/api/no-existe", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestProducts_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t, true)

	root := createCategory(t, app, `{"name":"Sex-Shop","slug":"sex-shop"}`)
	anillos := createCategory(t, app, `{"name":"Anillos","slug":"anillos","parentId":"`+root.ID+`"}`)

	status, raw := doRequest(t, app, http.MethodPost, "/api/products",
		`{"sku":"SKU-1","name":"Anillo","description":"desc","price":1000,"categoryId":"`+anillos.ID+`"}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	created := decode[dto.ProductResponse](t, raw)
	assert.Equal(t, int64(0), created.Stock)
	assert.Nil(t, created.Brand)

	status, _ = doRequest(t, app, http.MethodPost, "/api/products",
		`{"sku":"SKU-1","name":"Anillo","description":"desc","price":1000,"categoryId":"`+anillos.ID+`"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	status, raw = doRequest(t, app, http.MethodPost, "/api/products",
		`{"sku":"SKU-2","name":"Anillo","description":"desc","price":-5,"stock":1.5,"categoryId":"`+anillos.ID+`"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Len(t, decode[dto.ErrorResponse](t, raw).Details, 2)

	status, raw = doRequest(t, app, http.MethodPatch, "/api/products/SKU-1", `{"categoryId":"`+uuid.New().String()+`"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Message, "Category with id")

	status, raw = doRequest(t, app, http.MethodPatch, "/api/products/SKU-1", `{"stock":12,"brand":"Acme"}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))
	updated := decode[dto.ProductResponse](t, raw)
	assert.Equal(t, int64(12), updated.Stock)
	assert.Equal(t, "Anillo", updated.Name)
	require.NotNil(t, updated.Brand)

	status, raw = doRequest(t, app, http.MethodGet, "/api/products/parent-category/sex-shop", "")
	require.Equal(t, fiber.StatusOK, status)
	byParent := decode[dto.ProductsByParentCategoryResponse](t, raw)
	require.Len(t, byParent.Products, 1)
	assert.Equal(t, anillos.ID, byParent.Products[0].CategoryID)
	require.Len(t, byParent.Categories, 1)
	assert.Equal(t, "anillos", byParent.Categories[0].Slug)

	status, raw = doRequest(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]dto.ProductResponse](t, raw), 1)

	status, _ = doRequest(t, app, http.MethodDelete, "/api/products/SKU-1", "")
	assert.Equal(t, fiber.StatusNoContent, status)
	status, raw = doRequest(t, app, http.MethodGet, "/api/products/SKU-1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Product not found", decode[dto.ErrorResponse](t, raw).Message)
}

func TestProducts_SKUConEspacios(t *testing.T) {
	app := buildTestApp(t, true)
	root := createCategory(t, app, `{"name":"Resto-Bar","slug":"resto-bar"}`)

	status, raw := doRequest(t, app, http.MethodPost, "/api/products",
		`{"sku":"SKU 1","name":"Pizza","description":"grande","price":9000,"categoryId":"`+root.ID+`"}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	status, raw = doRequest(t, app, http.MethodGet, "/api/products/SKU%201", "")
	require.Equal(t, fiber.StatusOK, status, string(raw))
	assert.Equal(t, "SKU 1", decode[dto.ProductResponse](t, raw).SKU)

	status, raw = doRequest(t, app, http.MethodPatch, "/api/products/SKU%201", `{"stock":3}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))
	assert.Equal(t, int64(3), decode[dto.ProductResponse](t, raw).Stock)

	status, _ = doRequest(t, app, http.MethodDelete, "/api/products/SKU%201", "")
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestPanicQuedaRegistradoConStatus(t *testing.T) {
	var buf bytes.Buffer
	app := buildTestAppWithLogger(t, true, logger.New(logger.Config{Env: "test", Level: "info", Output: &buf}))
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("explota")
	})

	status, raw := doRequest(t, app, http.MethodGet, "/boom", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", decode[dto.ErrorResponse](t, raw).Code)

	var line map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if json.Unmarshal([]byte(l), &entry) == nil && entry["message"] == "petición HTTP" {
			line = entry
		}
	}
	require.NotNil(t, line, buf.String())
	assert.Equal(t, float64(fiber.StatusInternalServerError), line["status"])
	assert.Equal(t, "/boom", line["path"])
}
