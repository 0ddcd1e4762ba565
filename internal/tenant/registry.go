package tenant

import (
	"github.com/barbersched/BarberSched-BookingService/pkg/dbmetrics"
)

// Registry реестр пулов соединений по слагу тенанта (барбершопа).
// Заполняется один раз на старте из конфигурации и дальше только
// читается, поэтому синхронизация не нужна.
type Registry struct {
	pools       map[string]*dbmetrics.DB
	defaultSlug string
}

// NewRegistry создает пустой реестр с дефолтным тенантом
func NewRegistry(defaultSlug string) *Registry {
	return &Registry{
		pools:       make(map[string]*dbmetrics.DB),
		defaultSlug: defaultSlug,
	}
}

// Register регистрирует пул тенанта. Вызывается только на старте,
// до начала обработки запросов.
func (r *Registry) Register(slug string, db *dbmetrics.DB) {
	r.pools[slug] = db
}

// Resolve возвращает пул тенанта по слагу. Пустой слаг резолвится
// в дефолтного тенанта.
func (r *Registry) Resolve(slug string) (*dbmetrics.DB, bool) {
	if slug == "" {
		slug = r.defaultSlug
	}
	db, ok := r.pools[slug]
	return db, ok
}

// Slugs возвращает список зарегистрированных тенантов
func (r *Registry) Slugs() []string {
	slugs := make([]string, 0, len(r.pools))
	for slug := range r.pools {
		slugs = append(slugs, slug)
	}
	return slugs
}
