package cache

import "fmt"

// Key builders for the catalog read paths. Invalidation deletes by the
// matching prefix pattern.

const (
	domeListKey    = "planetaria:domes:list"
	sessionListKey = "planetaria:sessions:list"
	showListKey    = "planetaria:shows:list"
)

func DomeListKey() string { return domeListKey }
func DomePattern() string { return "planetaria:domes:*" }
func DomeKey(id string) string {
	return fmt.Sprintf("planetaria:domes:%s", id)
}

func SessionListKey(filters string) string {
	if filters == "" {
		return sessionListKey
	}
	return fmt.Sprintf("%s:%s", sessionListKey, filters)
}
func SessionPattern() string { return "planetaria:sessions:*" }
func SessionKey(id string) string {
	return fmt.Sprintf("planetaria:sessions:%s", id)
}

func ShowListKey() string { return showListKey }
func ShowPattern() string { return "planetaria:shows:*" }
func ShowKey(id string) string {
	return fmt.Sprintf("planetaria:shows:%s", id)
}
