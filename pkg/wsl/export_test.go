package wsl

import "context"

// SetUIDConfigurer replaces the WSL API call used by SetDefaultUser.
func SetUIDConfigurer(c *Controller, f func(ctx context.Context, instance string, uid uint32) error) {
	c.configureUID = f
}
