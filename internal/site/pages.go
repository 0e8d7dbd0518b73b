package site

import (
	"log/slog"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/websmith/internal/config"
	"git.home.luguber.info/inful/websmith/internal/document"
	werrors "git.home.luguber.info/inful/websmith/internal/errors"
	"git.home.luguber.info/inful/websmith/internal/logfields"
	"git.home.luguber.info/inful/websmith/internal/paginate"
)

// renderListingPages paginates the sorted list and renders one listing page
// per paginator page.
func (b *Builder) renderListingPages(logger *slog.Logger, rule config.Rule, list *document.List) error {
	pr := rule.Paginate

	paginator, err := paginate.New(list.Items(), pr.PerPage)
	if err != nil {
		return err
	}
	paginator.WithOrphans(pr.Orphans).WithAllowEmptyFirstPage(pr.AllowEmpty())

	pages, err := paginator.Pages()
	if err != nil {
		return err
	}
	logger.Info("Rendering listing pages", logfields.Rule(rule.Name), logfields.Pages(len(pages)))

	var errs error
	for _, page := range pages {
		doc := pageDocument(page, list)
		err := doc.Render(b.engine, b.cfg.TargetBase, document.RenderRequest{
			Template: pr.Template,
			Target:   pr.Target,
			Extra:    map[string]any{"documents": page.Items()},
		})
		if err != nil {
			errs = multierr.Append(errs, werrors.RenderFailed(rule.Name, err))
		}
	}
	return errs
}

// pageDocument wraps one paginator page as a renderable document. The list's
// own fields carry over so listing templates see list-level attributes next to
// the page navigation fields.
func pageDocument(page *paginate.Page[*document.Document], list *document.List) *document.Document {
	doc := document.New()
	for key, value := range list.Fields() {
		doc.Set(key, value)
	}

	doc.Set("number", page.Number())
	doc.Set("number1", page.Number()+1)
	doc.Set("page_count", page.Paginator().PageCount())
	doc.Set("has_next", page.HasNext())
	doc.Set("has_previous", page.HasPrevious())
	doc.Set("has_other_pages", page.HasOtherPages())
	doc.Set("start_index", page.StartIndex())
	doc.Set("end_index", page.EndIndex())
	if page.HasNext() {
		doc.Set("next_page_number", page.NextPageNumber())
	}
	if page.HasPrevious() {
		doc.Set("previous_page_number", page.PreviousPageNumber())
	}
	return doc
}
