package config

// Page URLs default to directories so a page "docs" is the URL parent of
// every page derived from the "docs/" directory.
const (
	DefaultContentDir     = "content"
	DefaultOutputDir      = "output"
	DefaultPagePath       = "pages"
	DefaultPageURL        = "{slug}/"
	DefaultPageSaveAs     = "{slug}/index.html"
	DefaultPageLangURL    = "{lang}/{slug}/"
	DefaultPageLangSaveAs = "{lang}/{slug}/index.html"
	DefaultLang           = "en"
	DefaultStaticPath     = "images"
)

// ApplyDefaults fills unset fields. PageInheritMetadataList is left alone:
// an absent list means inheritance is off.
func ApplyDefaults(s *Settings) {
	if s.ContentDir == "" {
		s.ContentDir = DefaultContentDir
	}
	if s.OutputDir == "" {
		s.OutputDir = DefaultOutputDir
	}
	if len(s.PagePaths) == 0 {
		s.PagePaths = []string{DefaultPagePath}
	}
	if s.PageURL == "" {
		s.PageURL = DefaultPageURL
	}
	if s.PageSaveAs == "" {
		s.PageSaveAs = DefaultPageSaveAs
	}
	if s.PageLangURL == "" {
		s.PageLangURL = DefaultPageLangURL
	}
	if s.PageLangSaveAs == "" {
		s.PageLangSaveAs = DefaultPageLangSaveAs
	}
	if s.DefaultLang == "" {
		s.DefaultLang = DefaultLang
	}
	if s.StaticPaths == nil {
		s.StaticPaths = []string{DefaultStaticPath}
	}
}
