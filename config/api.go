package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Master data and product reads are public; imports and pricing need auth
	return []string{"/health", "/api/master-data/:category", "/api/products", "/api/products/search", "/api/products/:code"}
}
