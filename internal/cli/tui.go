package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	textio "github.com/matzehuels/textvary/pkg/io"
)

// Browser styles
var (
	browseHeaderStyle = StyleTitle
	browseLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	browseTextStyle   = lipgloss.NewStyle().Foreground(colorWhite).PaddingLeft(2)
	browseDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// browseSet is one named variation set shown by the browser.
type browseSet struct {
	name string
	set  textio.Set
}

// =============================================================================
// BrowserModel - Interactive variation browser
// =============================================================================

// BrowserModel is the bubbletea model for paging through variations.
// Left/right move between variations, tab between input sets.
type BrowserModel struct {
	Sets   []browseSet
	Set    int
	Cursor int
	Width  int
}

// NewBrowserModel creates a browser positioned on the first variation.
func NewBrowserModel(sets []browseSet) BrowserModel {
	return BrowserModel{Sets: sets, Width: 80}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) current() browseSet {
	return m.Sets[m.Set]
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.Sets) == 0 {
		return m, tea.Quit
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.current().set.Variations)
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", " ":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "left", "h", "p":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
		case "tab":
			m.Set = (m.Set + 1) % len(m.Sets)
			m.Cursor = 0
		case "shift+tab":
			m.Set = (m.Set + len(m.Sets) - 1) % len(m.Sets)
			m.Cursor = 0
		}
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width, 20)
	}
	return m, nil
}

func (m BrowserModel) View() string {
	if len(m.Sets) == 0 {
		return ""
	}
	s := m.current()
	var b strings.Builder

	title := fmt.Sprintf("Variation %d/%d", m.Cursor+1, len(s.set.Variations))
	if len(m.Sets) > 1 {
		title += fmt.Sprintf("  ·  %s (%d/%d)", s.name, m.Set+1, len(m.Sets))
	}
	b.WriteString(browseHeaderStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("seed %d", s.set.Seed)))
	b.WriteString("\n\n")

	if len(s.set.Variations) == 0 {
		b.WriteString(browseDimStyle.Render("no variations"))
		b.WriteString("\n")
	} else {
		text := browseTextStyle.Width(m.Width - 4)
		v := s.set.Variations[m.Cursor]
		if v.Post != "" {
			b.WriteString(browseLabelStyle.Render("Original Post"))
			b.WriteString("\n")
			b.WriteString(text.Render(v.Post))
			b.WriteString("\n\n")
		}
		for _, cm := range v.Comments {
			b.WriteString(browseLabelStyle.Render(textio.CommentLabel(cm)))
			b.WriteString("\n")
			b.WriteString(text.Render(cm.Text))
			b.WriteString("\n\n")
		}
	}

	help := "←/→ variation  q quit"
	if len(m.Sets) > 1 {
		help = "←/→ variation  tab next input  q quit"
	}
	b.WriteString(browseDimStyle.Render(help))
	return b.String()
}

// runBrowser runs the browser until the user quits or ctx is cancelled.
func runBrowser(ctx context.Context, sets []browseSet) error {
	if len(sets) == 0 {
		return nil
	}
	_, err := tea.NewProgram(NewBrowserModel(sets), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}
