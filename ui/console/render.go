package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"vincit.fi/collector/backend/social"
	"vincit.fi/collector/ui/categoryview"
	"vincit.fi/collector/ui/imagegrid"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

// table writes the rows under the header as aligned columns.
func (s *Console) table(header []string, rows [][]string) {
	s.outMux.Lock()
	defer s.outMux.Unlock()
	w := newTable(s.out)
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func (s *Console) renderWorkspace() {
	if s.collection.IsSnapshot() {
		s.printf("(Showing saved collections, refreshing failed)\n")
	}
	s.renderCategories()
	if selected := s.collection.Selected(); selected != nil {
		s.printf("\n%s\n", selected.Name())
		s.renderGrid(s.images)
		s.printf("\nWishlist\n")
		s.renderGrid(s.wishlist)
	}
}

func (s *Console) renderCategories() {
	tiles := s.categories.Tiles()
	if len(tiles) == 0 {
		s.printf("%s\n", s.categories.EmptyMessage())
		return
	}
	rows := make([][]string, 0, len(tiles))
	var open *categoryview.Tile
	for _, tile := range tiles {
		marker := ""
		if tile.Selected {
			marker = "*"
		}
		if tile.OptionsOpen {
			open = tile
		}
		tags := strings.Join(tile.Tags, ", ")
		if tile.MoreTags != "" {
			tags += " " + tile.MoreTags
		}
		visibility := "private"
		if tile.Public {
			visibility = "public"
		}
		rows = append(rows, []string{marker, tile.Id.String(), tile.Name, visibility, tags})
	}
	s.table([]string{"", "ID", "NAME", "VISIBILITY", "TAGS"}, rows)
	if open != nil {
		id := open.Id.String()
		s.printf("Options for '%s':\n", open.Name)
		s.table([]string{"ACTION", "COMMAND"}, [][]string{
			{open.VisibilityLabel, "toggle-visibility " + id},
			{"Edit tags", "edit-tags " + id + " [tag...]"},
			{"Delete", "delete-category " + id},
		})
	}
}

// renderImage shows one image the way the detail view does.
func (s *Console) renderImage(item *imagegrid.Item) {
	image := item.Image
	rows := [][]string{
		{"Title", image.Title()},
		{"Collection", item.CategoryName},
		{"Description", image.Description()},
		{"Value", image.Valuation()},
		{"Tags", strings.Join(image.Tags(), ", ")},
		{"Image", item.Url},
	}
	if image.IsWishlist() {
		rows = append(rows, []string{"Buy", image.PurchaseUrl()})
	}
	s.table([]string{"FIELD", "VALUE"}, rows)
}

func (s *Console) renderGrid(grid *imagegrid.Grid) {
	items := grid.Items()
	if len(items) == 0 {
		s.printf("%s\n", grid.EmptyMessage())
		return
	}
	machine := grid.Selection()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		marker := ""
		if machine.IsSelected(item.Image.Id()) {
			marker = "x"
		}
		row := []string{marker, item.Image.Id().String(), item.Image.Title(), item.Image.Valuation(), strings.Join(item.Image.Tags(), ", ")}
		if grid.IsWishlist() {
			row = append(row, item.Image.PurchaseUrl())
		}
		rows = append(rows, row)
	}
	header := []string{"", "ID", "TITLE", "VALUE", "TAGS"}
	if grid.IsWishlist() {
		header = append(header, "BUY")
	}
	s.table(header, rows)
	if machine.IsSelecting() {
		s.printf("%d selected\n", machine.Count())
	}
}

func (s *Console) renderProfile() {
	profile := s.profile
	if profile.State() == social.Error {
		s.printf("%s\n", profile.Message())
		return
	}
	user := profile.User()
	stats := profile.Stats()
	s.printf("%s (@%s)\n", user.Label(), user.Username())
	if user.Bio() != "" {
		s.printf("%s\n", user.Bio())
	}
	s.printf("Followers: %d  Following: %d\n", user.FollowerCount(), user.FollowingCount())
	s.printf("Collections: %d  Items: %d  Total value: $%.2f\n", stats.TotalCollections, stats.TotalItems, stats.TotalValue)
	if !profile.IsOwn() {
		if user.IsFollowing() {
			s.printf("You follow this user. Type 'follow' to unfollow.\n")
		} else {
			s.printf("Type 'follow' to follow this user.\n")
		}
	}

	categories := profile.Categories()
	if len(categories) == 0 {
		s.printf("No collections to show.\n")
		return
	}
	selected := profile.SelectedCategory()
	rows := make([][]string, 0, len(categories))
	for _, category := range categories {
		marker := ""
		if selected != nil && selected.Id() == category.Id() {
			marker = "*"
		}
		rows = append(rows, []string{marker, category.Name(), fmt.Sprint(category.ImageCount())})
	}
	s.table([]string{"", "COLLECTION", "ITEMS"}, rows)
}

func (s *Console) renderFollows() {
	list := s.follows
	switch list.State() {
	case social.Error:
		s.printf("%s\n", list.Message())
		return
	case social.Empty:
		s.printf("%s\n", list.EmptyMessage())
		return
	}
	rows := [][]string{}
	for _, user := range list.Users() {
		following := ""
		if user.IsFollowing() {
			following = "following"
		}
		rows = append(rows, []string{user.Id().String(), user.Label(), following})
	}
	s.table([]string{"ID", "NAME", ""}, rows)
}

func (s *Console) renderUserSearch() {
	search := s.userSearch
	switch search.State() {
	case social.Idle, social.Error:
		if search.Message() != "" {
			s.printf("%s\n", search.Message())
		}
		return
	case social.Empty:
		s.printf("No users found.\n")
		return
	}
	rows := [][]string{}
	for _, user := range search.Results() {
		rows = append(rows, []string{user.Id().String(), user.Label(), "/profile/" + user.Id().String()})
	}
	s.table([]string{"ID", "NAME", "PROFILE"}, rows)
}

func (s *Console) renderTagSearch() {
	search := s.tagSearch
	switch search.State() {
	case social.Idle, social.Error:
		if search.Message() != "" {
			s.printf("%s\n", search.Message())
		}
		return
	case social.Empty:
		s.printf("%s\n", search.EmptyMessage())
		return
	}
	rows := [][]string{}
	for _, result := range search.Results() {
		owner := ""
		if result.Owner != nil {
			owner = result.Owner.Label()
		}
		rows = append(rows, []string{result.TypeLabel(), result.Title, result.CategoryName, owner})
	}
	s.table([]string{"TYPE", "TITLE", "COLLECTION", "OWNER"}, rows)
}

func (s *Console) renderEvaluation() {
	evaluation := s.evaluation
	if message := evaluation.Message(); message != "" {
		s.printf("%s\n", message)
		return
	}
	summary := evaluation.Summary()
	s.printf("Total spending: $%.2f\n", summary.TotalSpending)
	if len(summary.MonthlySpending) > 0 {
		rows := [][]string{}
		for _, month := range summary.MonthlySpending {
			rows = append(rows, []string{month.Month, fmt.Sprintf("$%.2f", month.Amount)})
		}
		s.table([]string{"MONTH", "SPENDING"}, rows)
	}
	if len(summary.Collections) > 0 {
		rows := [][]string{}
		for _, collection := range summary.Collections {
			rows = append(rows, []string{collection.CollectionName, fmt.Sprintf("$%.2f", collection.Price)})
		}
		s.table([]string{"COLLECTION", "VALUE"}, rows)
	}
	for _, line := range evaluation.Lines() {
		s.printf("%s\n", line.Label)
	}
	if evaluation.IsGoalFormOpen() && evaluation.GoalFormError() != "" {
		s.printf("%s\n", evaluation.GoalFormError())
	}
}
