// Package templates embeds the section-guidance templates shipped with the
// service.
package templates

import "embed"

//go:embed *.json *.yaml
var FS embed.FS
