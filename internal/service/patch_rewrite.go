package service

import (
	"fmt"
	"regexp"
	"strings"
)

// I18nResourcesComponent ships translation files instead of classes.
const I18nResourcesComponent = "zend-i18n-resources"

var componentNameMap = map[string]string{
	"eventmanager":     "EventManager",
	"inputfilter":      "InputFilter",
	"modulemanager":    "ModuleManager",
	"permissions-acl":  "Permissions/Acl",
	"permissions-rbac": "Permissions/Rbac",
	"progressbar":      "ProgressBar",
	"servicemanager":   "ServiceManager",
}

var (
	resourcesContextRegex = regexp.MustCompile(`(?m)^ (languages/)`)
	resourcesDiffRegex    = regexp.MustCompile(`(?m)^(diff --git a/)(languages/.*?b/)(languages/.*)$`)
	resourcesFileRegex    = regexp.MustCompile(`(?m)^((?:---|\+\+\+) (?:a|b)/)(languages/.*)$`)
)

// PatchRewriteService rewrites a patch made against a split component
// repository so it applies to the monolithic framework repository.
type PatchRewriteService interface {
	Rewrite(component, patch string) string
	NormalizeComponent(component string) string
}

type patchRewriteService struct{}

func NewPatchRewriteService() PatchRewriteService {
	return &patchRewriteService{}
}

// NormalizeComponent maps "zend-eventmanager" to "EventManager" and
// "zend-view" to "View".
func (s *patchRewriteService) NormalizeComponent(component string) string {
	name := strings.ReplaceAll(component, "zend-", "")
	if mapped, ok := componentNameMap[name]; ok {
		return mapped
	}
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (s *patchRewriteService) Rewrite(component, patch string) string {
	if component == I18nResourcesComponent {
		return rewriteResources(patch)
	}
	name := s.NormalizeComponent(component)
	patch = rewriteTree(patch, "src/", fmt.Sprintf("library/Zend/%s/", name))
	return rewriteTree(patch, "test/", fmt.Sprintf("tests/ZendTest/%s/", name))
}

// rewriteTree moves every path under from to to, on context lines, diff
// headers and ---/+++ file lines.
func rewriteTree(patch, from, to string) string {
	quoted := regexp.QuoteMeta(from)
	context := regexp.MustCompile(`(?m)^ ` + quoted)
	diff := regexp.MustCompile(`(?m)^(diff --git a/)` + quoted + `([^ ]+)( b/)` + quoted + `(.*)$`)
	file := regexp.MustCompile(`(?m)^((?:---|\+\+\+) (?:a|b)/)` + quoted + `(.*)$`)

	escaped := strings.ReplaceAll(to, "$", "$$")
	patch = context.ReplaceAllLiteralString(patch, " "+to)
	patch = diff.ReplaceAllString(patch, "${1}"+escaped+"${2}${3}"+escaped+"${4}")
	return file.ReplaceAllString(patch, "${1}"+escaped+"${2}")
}

func rewriteResources(patch string) string {
	patch = resourcesContextRegex.ReplaceAllString(patch, " resources/${1}")
	patch = resourcesDiffRegex.ReplaceAllString(patch, "${1}resources/${2}resources/${3}")
	return resourcesFileRegex.ReplaceAllString(patch, "${1}resources/${2}")
}
