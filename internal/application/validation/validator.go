// Package validation aplica los esquemas estructurales de entrada (longitudes, slug, UUID,
// enteros positivos) antes de cualquier regla de negocio. Reporta todos los campos
// inválidos en un *domain.ValidationError, no solo el primero.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/patch"
)

// SlugPattern formato de slug: minúsculas y dígitos separados por guiones simples.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Options configura la estrictez del decodificador.
type Options struct {
	// StripUnknown ignora los campos desconocidos; en false cada uno es un error de validación.
	StripUnknown bool
}

// Validator decodifica cuerpos JSON y valida structs con tags `validate`.
type Validator struct {
	v    *validator.Validate
	opts Options
}

// New construye el validador con las reglas propias del catálogo registradas.
func New(opts Options) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return SlugPattern.MatchString(fl.Field().String())
	})
	// Los campos patch se validan por su valor; ausente o null se comporta como puntero nil.
	v.RegisterCustomTypeFunc(patchValue[string], patch.Field[string]{})
	v.RegisterCustomTypeFunc(patchValue[int64], patch.Field[int64]{})
	v.RegisterStructValidation(categoryPatchNulls, dto.UpdateCategoryRequest{})
	v.RegisterStructValidation(productPatchNulls, dto.UpdateProductRequest{})
	return &Validator{v: v, opts: opts}
}

func patchValue[T any](field reflect.Value) interface{} {
	f, ok := field.Interface().(patch.Field[T])
	if !ok {
		return nil
	}
	return f.Ptr()
}

// Decode parsea body en dst (puntero a struct) y lo valida.
func (val *Validator) Decode(body []byte, dst any) error {
	verr := &domain.ValidationError{}
	if len(bytes.TrimSpace(body)) == 0 {
		verr.Add("body", "request body is required")
		return verr
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			verr.Add("body", "request body must be a JSON object")
		} else {
			verr.Add("body", "malformed JSON body")
		}
		return verr
	}
	if !val.opts.StripUnknown {
		known := jsonFields(dst)
		unknown := make([]string, 0)
		for key := range raw {
			if !known[key] {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			verr.Add(key, "unknown field")
		}
	}

	decodeFields(raw, dst, verr)

	val.collect(val.v.Struct(dst), verr)
	return verr.OrNil()
}

// Struct valida un struct ya construido (por ejemplo desde código o tests).
func (val *Validator) Struct(in any) error {
	verr := &domain.ValidationError{}
	val.collect(val.v.Struct(in), verr)
	return verr.OrNil()
}

// UUID valida un parámetro de ruta que debe ser un UUID.
func (val *Validator) UUID(name, value string) error {
	if err := val.v.Var(value, "required,uuid"); err != nil {
		verr := &domain.ValidationError{}
		verr.Add(name, "must be a valid UUID")
		return verr
	}
	return nil
}

func (val *Validator) collect(err error, verr *domain.ValidationError) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("body", "invalid request body")
		return
	}
	for _, fe := range fieldErrs {
		path := fe.Field()
		if verr.Has(path) {
			continue
		}
		verr.Add(path, message(fe))
	}
}

func jsonFields(dst any) map[string]bool {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	out := make(map[string]bool, t.NumField())
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		if name := jsonName(t.Field(i)); name != "-" {
			out[name] = true
		}
	}
	return out
}

// decodeFields decodifica cada clave conocida en su campo por separado, de modo que un
// tipo inválido no impide revisar el resto de claves.
func decodeFields(raw map[string]json.RawMessage, dst any, verr *domain.ValidationError) {
	v := reflect.ValueOf(dst)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := jsonName(t.Field(i))
		data, ok := raw[name]
		if name == "-" || !ok {
			continue
		}
		if err := json.Unmarshal(data, v.Field(i).Addr().Interface()); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				verr.Add(name, typeMessage(typeErr.Type))
			} else {
				verr.Add(name, "has an invalid value")
			}
		}
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		return f.Name
	}
	return name
}

func typeMessage(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "has an invalid type"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "must be an integer"
	case reflect.String:
		return "must be a string"
	default:
		return "has an invalid type"
	}
}

func categoryPatchNulls(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(dto.UpdateCategoryRequest)
	if !ok {
		return
	}
	reportNull(sl, in.Name, "name", "Name")
	reportNull(sl, in.Slug, "slug", "Slug")
}

func productPatchNulls(sl validator.StructLevel) {
	in, ok := sl.Current().Interface().(dto.UpdateProductRequest)
	if !ok {
		return
	}
	reportNull(sl, in.SKU, "sku", "SKU")
	reportNull(sl, in.Name, "name", "Name")
	reportNull(sl, in.Description, "description", "Description")
	reportNull(sl, in.Price, "price", "Price")
	reportNull(sl, in.Stock, "stock", "Stock")
	reportNull(sl, in.CategoryID, "categoryId", "CategoryID")
}

func reportNull[T any](sl validator.StructLevel, f patch.Field[T], jsonName, fieldName string) {
	if f.Set && f.Null {
		sl.ReportError(f, jsonName, fieldName, "notnull", "")
	}
}
