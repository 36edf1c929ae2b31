package config

type CatalogConfig interface {
	GetCatalogAPIURL() string
	GetCatalogAPIKey() string
}

type Catalog struct{}

var _ CatalogConfig = Catalog{}

func (Catalog) GetCatalogAPIURL() string {
	return GetEnv("OMDB_API_URL", "https://www.omdbapi.com/")
}

func (Catalog) GetCatalogAPIKey() string {
	return GetEnv("OMDB_API_KEY", "")
}
