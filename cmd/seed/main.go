// seed carga las categorías base del catálogo (dos raíces y sus subcategorías).
// Es idempotente: los slugs que ya existen se reutilizan y no se vuelven a crear.
//
// Uso: go run ./cmd/seed   (mismas variables de entorno que la API)
package main

import (
	"context"
	"errors"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/store"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/jhoicas/catalogo-api/pkg/slug"
)

type rootSeed struct {
	Name     string
	Children []string
}

var catalog = []rootSeed{
	{Name: "Resto-Bar", Children: []string{
		"Promoción", "Desayuno", "Sandwich", "Pizzas", "Postres", "Snack", "Para Compartir",
		"Bebestibles", "Cervezas", "Vinos", "Espumantes", "Destilados", "Aperitivos", "Coctels",
	}},
	{Name: "Sex-Shop", Children: []string{
		"Accesorios", "Anillos", "Vibradores", "Dildos", "Preservativos", "Gel Lubricantes",
		"Juguetes", "Lencería Femenina", "Lencería Masculina", "Otros",
	}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	ctx := log.WithContext(context.Background())

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer st.Close()

	uc := usecase.NewCategoryUseCase(st.Categories, usecase.CategoryOptions{})
	created, err := seed(ctx, uc, validation.New(validation.Options{}), catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("seed de categorías")
	}
	log.Info().Int("creadas", created).Msg("seed completado")
}

// seed crea las categorías que falten y devuelve cuántas creó.
func seed(ctx context.Context, uc *usecase.CategoryUseCase, v *validation.Validator, roots []rootSeed) (int, error) {
	created := 0
	for _, root := range roots {
		parent, isNew, err := ensure(ctx, uc, v, root.Name, nil)
		if err != nil {
			return created, err
		}
		if isNew {
			created++
		}
		for _, name := range root.Children {
			_, isNew, err := ensure(ctx, uc, v, name, &parent.ID)
			if err != nil {
				return created, err
			}
			if isNew {
				created++
			}
		}
		logger.FromContext(ctx).Info().Str("raiz", root.Name).Int("subcategorias", len(root.Children)).Msg("categoría raíz lista")
	}
	return created, nil
}

func ensure(ctx context.Context, uc *usecase.CategoryUseCase, v *validation.Validator, name string, parentID *string) (*dto.CategoryResponse, bool, error) {
	in := dto.CreateCategoryRequest{Name: name, Slug: slug.Make(name), ParentID: parentID}
	if err := v.Struct(in); err != nil {
		return nil, false, err
	}
	existing, err := uc.FindBySlug(ctx, in.Slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	out, err := uc.Create(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
