package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyy/internal/ui/theme"
)

const bannerArt = `
 ███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗██╗   ██╗
 ██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝╚██╗ ██╔╝
 ███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝  ╚████╔╝
 ╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝    ╚██╔╝
 ███████║   ██║   ╚██████╔╝██████╔╝   ██║      ██║
 ╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝      ╚═╝`

const bannerCompact = "S T U D Y Y"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 56

// RenderBanner returns the banner in the primary color, or the compact
// form on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
