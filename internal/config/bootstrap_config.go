package config

type Bootstrap struct{}

var _ BootstrapConfig = Bootstrap{}

func (Bootstrap) GetAdminEmail() string {
	return GetEnv("ADMIN_EMAIL", "admin@localhost")
}

func (Bootstrap) GetAdminUsername() string {
	return GetEnv("ADMIN_USERNAME", "admin")
}

// GetAdminPassword has no default: an empty value skips admin bootstrap.
func (Bootstrap) GetAdminPassword() string {
	return GetEnv("ADMIN_PASSWORD", "")
}
