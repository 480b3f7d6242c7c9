package console

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/backend/social"
	"vincit.fi/collector/ui/forms"
	"vincit.fi/collector/ui/imagegrid"
	"vincit.fi/collector/ui/router"
	"vincit.fi/collector/ui/tags"
)

const (
	deleteAccountFailedMessage = "Failed to delete account. Please try again later."

	optionsName = "options"
)

var errWrongPage = errors.New("not available on this page")

// newRootCommand builds the command tree for one input line. A fresh tree is
// built every time so that flag values never leak from one line to the next.
func (s *Console) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "collector",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(s.writer())
	root.SetErr(s.writer())

	help := s.helpCommand(root)
	root.AddCommand(
		help,
		s.quitCommand(),
		s.loginCommand(),
		s.logoutCommand(),
		s.deleteAccountCommand(),
		s.goCommand(),
		s.backCommand(),
		s.refreshCommand(),
		s.showCommand(),
		s.selectCommand(),
		s.addCategoryCommand(),
		s.optionsCommand(),
		s.deleteCategoryCommand(),
		s.toggleVisibilityCommand(),
		s.editTagsCommand(),
		s.uploadCommand(),
		s.openCommand(),
		s.selectImagesCommand(),
		s.checkCommand(),
		s.uncheckAllCommand(),
		s.deleteImagesCommand(),
		s.transferCommand(),
		s.editImageCommand(),
		s.followCommand(),
		s.followListCommand("followers", "List the followers of the shown profile", social.Followers),
		s.followListCommand("following", "List who the shown profile follows", social.Following),
		s.toggleFollowCommand(),
		s.editProfileCommand(),
		s.searchUsersCommand(),
		s.searchTagCommand(),
		s.setGoalCommand(),
	)
	root.SetHelpCommand(help)
	return root
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError(cmd)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError(cmd)
		}
		return nil
	}
}

func usageError(cmd *cobra.Command) error {
	return fmt.Errorf("usage: %s", cmd.Use)
}

func (s *Console) helpCommand(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "List the commands or show the options of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				target, _, err := root.Find(args)
				if err != nil || target == root {
					return fmt.Errorf("unknown command '%s'", args[0])
				}
				s.printf("%s\n%s\n", target.Use, target.Short)
				if target.HasAvailableLocalFlags() {
					s.printf("%s", target.LocalFlags().FlagUsages())
				}
				return nil
			}
			rows := [][]string{}
			for _, command := range root.Commands() {
				if command.IsAvailableCommand() || command == cmd {
					rows = append(rows, []string{command.Use, command.Short})
				}
			}
			s.table([]string{"COMMAND", "DESCRIPTION"}, rows)
			return nil
		},
	}
}

func (s *Console) quitCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "quit",
		Aliases: []string{"exit"},
		Short:   "Exit",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return errQuit
		},
	}
}

func (s *Console) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [google-id-token]",
		Short: "Log in with a Google ID token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			callback := make(chan string, 1)
			if len(args) == 1 {
				callback <- args[0]
			} else {
				s.printf("Paste the Google ID token: ")
				callback <- s.readLine()
			}
			close(callback)
			user, err := s.session.AwaitLogin(cmd.Context(), callback)
			if err != nil {
				return err
			}
			s.printf("Logged in as %s\n", user.Label())
			return nil
		},
	}
}

func (s *Console) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s.session.Logout(cmd.Context())
			s.printf("Logged out\n")
			return nil
		},
	}
}

func (s *Console) deleteAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-account",
		Short: "Delete your account after confirmation",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := s.session.RequireUser(); err != nil {
				return err
			}
			s.printf("This will permanently delete your account and all of your collections. Type 'yes' to continue: ")
			if s.readLine() != "yes" {
				s.printf("Cancelled\n")
				return nil
			}
			if err := s.accounts.DeleteAccount(cmd.Context()); err != nil {
				s.broker.SendCommandToTopic(api.ShowNotice, &api.NoticeCommand{Message: deleteAccountFailedMessage})
				return err
			}
			s.printf("Account deleted\n")
			return nil
		},
	}
}

func (s *Console) goCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "go <path>",
		Short: "Open /, /profile, /profile/<id> or /financialEval",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := s.router.Navigate(args[0])
			s.takePendingPage()
			s.mount(cmd.Context(), page)
			return nil
		},
	}
}

func (s *Console) backCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Return to the previous page",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := s.router.Back()
			s.takePendingPage()
			s.mount(cmd.Context(), page)
			return nil
		},
	}
}

func (s *Console) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current page again",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case s.profile != nil:
				s.renderProfile()
			case s.evaluation != nil:
				s.renderEvaluation()
			case s.router.Current().Route == router.Workspace:
				s.renderWorkspace()
			default:
				s.mount(cmd.Context(), s.router.Current())
			}
			return nil
		},
	}
}

func (s *Console) workspace() error {
	page := s.router.Current()
	if page.Route != router.Workspace || page.Loading {
		return errWrongPage
	}
	return nil
}

func (s *Console) refreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload your collections",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			err := s.collection.LoadCategories(cmd.Context())
			s.syncGrids()
			s.renderWorkspace()
			return err
		},
	}
}

func (s *Console) selectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <collection name>",
		Short: "Select a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if s.profile != nil {
				if !s.profile.SelectCategory(name) {
					return fmt.Errorf("no collection named '%s'", name)
				}
				s.renderProfile()
				return nil
			}
			if err := s.workspace(); err != nil {
				return err
			}
			if !s.categories.Select(name) {
				return fmt.Errorf("no collection named '%s'", name)
			}
			s.syncGrids()
			s.renderWorkspace()
			return nil
		},
	}
}

func (s *Console) addCategoryCommand() *cobra.Command {
	var private bool
	var tagList []string
	var placeholder string
	cmd := &cobra.Command{
		Use:   "add-category [--private] [--tags a,b] [--placeholder file] <name>",
		Short: "Create a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			form := forms.NewAddCategoryForm(s.remote, s.collection)
			form.Name = strings.Join(args, " ")
			form.Public = !private
			form.PlaceholderPath = placeholder
			if err := addTags(form.Tags, tagList); err != nil {
				return err
			}
			err := form.Submit(cmd.Context())
			s.printPreview(form.Preview(), "")
			if err != nil {
				return formError(form.Message(), err)
			}
			s.printf("Created collection '%s'\n", form.Name)
			s.syncGrids()
			s.renderCategories()
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&private, "private", false, "Hide the collection from other users")
	flags.StringSliceVarP(&tagList, "tags", "t", nil, "Comma separated tags")
	flags.StringVar(&placeholder, "placeholder", "", "Placeholder image file")
	return cmd
}

func categoryId(args []string) (apitype.CategoryId, error) {
	return apitype.ParseCategoryId(args[0])
}

// optionsCommand opens or closes the options menu of a category. Any other
// command closes the menu, as a click elsewhere would.
func (s *Console) optionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   optionsName + " <id>",
		Short: "Open or close the options menu of a collection",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			id, err := categoryId(args)
			if err != nil {
				return err
			}
			s.categories.OpenOptions(id)
			s.renderCategories()
			return nil
		},
	}
}

func (s *Console) deleteCategoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-category <id>",
		Short: "Delete a collection and its images",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			id, err := categoryId(args)
			if err != nil {
				return err
			}
			confirmation, err := s.categories.ConfirmDelete(id)
			if err != nil {
				return err
			}
			s.printf("%s\n%s\nType '%s' to continue: ", confirmation.Title, confirmation.Message, strings.ToLower(confirmation.Confirm))
			if !strings.EqualFold(s.readLine(), confirmation.Confirm) {
				s.printf("Cancelled\n")
				return nil
			}
			if err := s.categories.Delete(cmd.Context(), id); err != nil {
				return err
			}
			s.syncGrids()
			s.renderWorkspace()
			return nil
		},
	}
}

func (s *Console) toggleVisibilityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-visibility <id>",
		Short: "Make a collection public or private",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			id, err := categoryId(args)
			if err != nil {
				return err
			}
			if err := s.categories.ToggleVisibility(cmd.Context(), id); err != nil {
				return err
			}
			s.renderCategories()
			return nil
		},
	}
}

// editTagsCommand replaces the tags of a category. Each tag is entered as if
// typed in the tag input and confirmed with Enter.
func (s *Console) editTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit-tags <id> [tag...]",
		Short: "Replace the tags of a collection",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			id, err := categoryId(args)
			if err != nil {
				return err
			}
			editor := s.categories.TagEditor(id)
			if editor == nil {
				return fmt.Errorf("no category %d", id)
			}
			editor.SetEnabled(true)
			for _, tag := range editor.Tags() {
				editor.Remove(tag)
			}
			for _, tag := range args[1:] {
				if _, err := editor.KeyPress(tags.KeyEnter, tag); err != nil {
					return err
				}
			}

			form := forms.NewEditTagsForm(id, editor, s.categories)
			if err := form.Submit(cmd.Context()); err != nil {
				return formError(form.Message(), err)
			}
			s.renderCategories()
			return nil
		},
	}
}

func (s *Console) uploadCommand() *cobra.Command {
	var wishlist, generate bool
	var description, valuation, purchaseUrl, savePreview string
	var tagList []string
	cmd := &cobra.Command{
		Use:   "upload [--wishlist] [--description d] [--valuation v] [--url u] [--tags a,b] [--generate] [--save-preview file] <file> <title>",
		Short: "Upload an image to the selected collection",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			ctx := cmd.Context()
			form := forms.NewAddImageForm(s.remote, s.collection).WithCategory(s.collection.Selected())
			form.FilePath = args[0]
			form.Title = strings.Join(args[1:], " ")
			form.Wishlist = wishlist
			if generate {
				if err := form.GenerateFields(ctx); err != nil {
					return formError(form.Message(), err)
				}
				s.printf("Generated: %s / %s / %s\n", form.Description, form.Valuation, strings.Join(form.Tags.Tags(), ", "))
			}
			if description != "" {
				form.Description = description
			}
			if valuation != "" {
				form.Valuation = valuation
			}
			if purchaseUrl != "" {
				form.PurchaseUrl = purchaseUrl
			}
			if err := addTags(form.Tags, tagList); err != nil {
				return err
			}

			err := form.Submit(ctx)
			s.printPreview(form.Preview(), savePreview)
			if err != nil {
				return formError(form.Message(), err)
			}
			s.printf("Uploaded '%s'\n", form.Title)
			s.syncGrids()
			s.renderWorkspace()
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&wishlist, "wishlist", "w", false, "Add to the wishlist")
	flags.StringVarP(&description, "description", "d", "", "Description")
	flags.StringVar(&valuation, "valuation", "", "Value in dollars")
	flags.StringVar(&purchaseUrl, "url", "", "Where to buy, wishlist only")
	flags.StringSliceVarP(&tagList, "tags", "t", nil, "Comma separated tags")
	flags.BoolVar(&generate, "generate", false, "Fill the empty fields from the title")
	flags.StringVar(&savePreview, "save-preview", "", "Write the upright thumbnail to this file")
	return cmd
}

// printPreview shows the size of the upright thumbnail and optionally saves
// it. A missing preview is not an error.
func (s *Console) printPreview(preview image.Image, path string) {
	if preview == nil {
		return
	}
	bounds := preview.Bounds()
	s.printf("Preview: %dx%d\n", bounds.Dx(), bounds.Dy())
	if path == "" {
		return
	}
	if err := imaging.Save(preview, path); err != nil {
		s.printf("Could not save the preview: %s\n", err)
		return
	}
	s.printf("Preview saved to %s\n", path)
}

func (s *Console) grid(wishlist bool) *imagegrid.Grid {
	if wishlist {
		return s.wishlist
	}
	return s.images
}

// openCommand clicks an image: it opens the image, or while images are being
// selected checks or unchecks it.
func (s *Console) openCommand() *cobra.Command {
	var wishlist bool
	cmd := &cobra.Command{
		Use:   "open [--wishlist] <id>",
		Short: "Show an image, or check it while selecting",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			id, err := apitype.ParseImageId(args[0])
			if err != nil {
				return err
			}
			grid := s.grid(wishlist)
			switch grid.Click(id) {
			case imagegrid.OpenDetail:
				s.renderImage(grid.Item(id))
			case imagegrid.Toggled:
				s.renderGrid(grid)
			default:
				return fmt.Errorf("no image %d in this view", id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "Use the wishlist")
	return cmd
}

func (s *Console) selectImagesCommand() *cobra.Command {
	var wishlist bool
	cmd := &cobra.Command{
		Use:   "select-images [--wishlist]",
		Short: "Start selecting images; 'open <id>' then checks them",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			s.grid(wishlist).BeginSelection()
			s.printf("Selecting images. Use 'open <id>' to check or uncheck them.\n")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "Use the wishlist")
	return cmd
}

func (s *Console) checkCommand() *cobra.Command {
	var wishlist bool
	cmd := &cobra.Command{
		Use:   "check [--wishlist] <id> [id...]",
		Short: "Select images for a bulk action",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			grid := s.grid(wishlist)
			grid.BeginSelection()
			for _, value := range args {
				id, err := apitype.ParseImageId(value)
				if err != nil {
					return err
				}
				if grid.Item(id) == nil {
					return fmt.Errorf("no image %d in this view", id)
				}
				if !grid.Selection().IsSelected(id) {
					grid.Toggle(id)
				}
			}
			s.renderGrid(grid)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "Use the wishlist")
	return cmd
}

func (s *Console) uncheckAllCommand() *cobra.Command {
	var wishlist bool
	cmd := &cobra.Command{
		Use:   "uncheck-all [--wishlist]",
		Short: "Cancel the image selection",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s.grid(wishlist).CancelSelection()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "Use the wishlist")
	return cmd
}

func (s *Console) deleteImagesCommand() *cobra.Command {
	var wishlist bool
	cmd := &cobra.Command{
		Use:   "delete-images [--wishlist]",
		Short: "Delete the selected images",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			grid := s.grid(wishlist)
			count := grid.Selection().Count()
			if err := grid.DeleteSelected(cmd.Context()); err != nil {
				return err
			}
			s.printf("Deleted %d images\n", count)
			s.syncGrids()
			s.renderWorkspace()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "Use the wishlist")
	return cmd
}

func (s *Console) transferCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer",
		Short: "Move the selected wishlist items to the collection",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			err := s.wishlist.TransferSelected(cmd.Context())
			s.syncGrids()
			s.renderWorkspace()
			return err
		},
	}
}

func (s *Console) editImageCommand() *cobra.Command {
	var wishlist bool
	var title, description, valuation, purchaseUrl string
	var tagList []string
	cmd := &cobra.Command{
		Use:   "edit-image [--wishlist] [--title t] [--description d] [--valuation v] [--url u] [--tags a,b]",
		Short: "Edit the one selected image",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.workspace(); err != nil {
				return err
			}
			grid := s.grid(wishlist)
			machine := grid.Selection()
			if !machine.CanEdit() {
				return fmt.Errorf("select exactly one image to edit")
			}
			item := grid.Item(machine.Selected()[0])
			if item == nil {
				return imagegrid.ErrNoSelection
			}

			form := forms.NewEditImageDetailsForm(item.Image, grid)
			if title != "" {
				form.Title = title
			}
			if description != "" {
				form.Description = description
			}
			if valuation != "" {
				form.Valuation = valuation
			}
			if purchaseUrl != "" {
				form.PurchaseUrl = purchaseUrl
			}
			if cmd.Flags().Changed("tags") {
				for _, tag := range form.Tags.Tags() {
					form.Tags.Remove(tag)
				}
				if err := addTags(form.Tags, tagList); err != nil {
					return err
				}
			}
			if err := form.Submit(cmd.Context()); err != nil {
				return formError(form.Message(), err)
			}
			s.syncGrids()
			s.renderWorkspace()
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&wishlist, "wishlist", "w", false, "Edit in the wishlist")
	flags.StringVar(&title, "title", "", "Title")
	flags.StringVarP(&description, "description", "d", "", "Description")
	flags.StringVar(&valuation, "valuation", "", "Value in dollars")
	flags.StringVar(&purchaseUrl, "url", "", "Where to buy, wishlist only")
	flags.StringSliceVarP(&tagList, "tags", "t", nil, "Comma separated tags, replaces the old ones")
	return cmd
}

func (s *Console) followCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "follow",
		Short: "Follow or unfollow the shown user",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.profile == nil || s.profile.IsOwn() {
				return errWrongPage
			}
			if err := s.profile.ToggleFollow(cmd.Context()); err != nil {
				return err
			}
			s.renderProfile()
			return nil
		},
	}
}

func (s *Console) followListCommand(use string, short string, kind social.ListKind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.profile == nil {
				return errWrongPage
			}
			userId := s.profile.UserId()
			if s.profile.IsOwn() {
				userId = apitype.NoUser
			}
			s.follows = social.NewFollowList(s.remote, s.broker, kind, userId)
			err := s.follows.Load(cmd.Context())
			s.renderFollows()
			return err
		},
	}
}

func (s *Console) toggleFollowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-follow <user id>",
		Short: "Follow or unfollow a user in the list",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.follows == nil {
				return errWrongPage
			}
			id, err := apitype.ParseUserId(args[0])
			if err != nil {
				return err
			}
			if err := s.follows.Toggle(cmd.Context(), id); err != nil {
				return err
			}
			s.renderFollows()
			return nil
		},
	}
}

func (s *Console) editProfileCommand() *cobra.Command {
	var first, last, display, bio, picture string
	cmd := &cobra.Command{
		Use:   "edit-profile [--first f] [--last l] [--display d] [--bio b] [--picture file]",
		Short: "Edit your profile",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.profile == nil || !s.profile.IsOwn() {
				return errWrongPage
			}
			form := forms.NewEditProfileForm(s.profile.User(), s.profile)
			flags := cmd.Flags()
			if flags.Changed("first") {
				form.FirstName = first
			}
			if flags.Changed("last") {
				form.LastName = last
			}
			if flags.Changed("display") {
				form.DisplayName = display
			}
			if flags.Changed("bio") {
				form.Bio = bio
			}
			form.PicturePath = picture
			err := form.Submit(cmd.Context())
			s.printPreview(form.Preview(), "")
			if err != nil {
				return formError(form.Message(), err)
			}
			s.renderProfile()
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&first, "first", "", "First name")
	flags.StringVar(&last, "last", "", "Last name")
	flags.StringVar(&display, "display", "", "Display name")
	flags.StringVar(&bio, "bio", "", "Bio")
	flags.StringVar(&picture, "picture", "", "Profile picture file")
	return cmd
}

func (s *Console) searchUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search-users <name>",
		Short: "Find users",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := s.userSearch.Search(cmd.Context(), strings.Join(args, " "))
			s.renderUserSearch()
			return err
		},
	}
}

func (s *Console) searchTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search-tag <tag>",
		Short: "Find public content with a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := s.tagSearch.Search(cmd.Context(), strings.Join(args, " "))
			s.renderTagSearch()
			return err
		},
	}
}

func (s *Console) setGoalCommand() *cobra.Command {
	var cushion string
	cmd := &cobra.Command{
		Use:   "set-goal [--cushion amount] <monthly spending>",
		Short: "Set a monthly spending goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.evaluation == nil {
				return errWrongPage
			}
			s.evaluation.OpenGoalForm()
			form := forms.NewSetGoalForm(s.evaluation)
			form.MonthlySpending = strings.Join(args, "")
			form.Cushion = cushion != ""
			form.CushionAmount = cushion
			if err := form.Submit(cmd.Context()); err != nil {
				return formError(form.Message(), err)
			}
			s.renderEvaluation()
			return nil
		},
	}
	cmd.Flags().StringVar(&cushion, "cushion", "", "Extra amount allowed on top of the goal")
	return cmd
}

func addTags(editor *tags.Editor, list []string) error {
	if len(list) == 0 {
		return nil
	}
	editor.SetEnabled(true)
	for _, tag := range list {
		if err := editor.Add(tag); err != nil {
			return err
		}
	}
	return nil
}

// formError shows the form's message in place of the raw error.
func formError(message string, err error) error {
	if message == "" {
		return err
	}
	return &formFailure{message: message, err: err}
}

type formFailure struct {
	message string
	err     error
}

func (e *formFailure) Error() string {
	return e.message
}

func (e *formFailure) Unwrap() error {
	return e.err
}
