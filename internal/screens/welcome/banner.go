package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/omegalab/lessonplan/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ███╗   ███╗███████╗ ██████╗  █████╗
 ██╔═══██╗████╗ ████║██╔════╝██╔════╝ ██╔══██╗
 ██║   ██║██╔████╔██║█████╗  ██║  ███╗███████║
 ██║   ██║██║╚██╔╝██║██╔══╝  ██║   ██║██╔══██║
 ╚██████╔╝██║ ╚═╝ ██║███████╗╚██████╔╝██║  ██║
  ╚═════╝ ╚═╝     ╚═╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "O M E G A"

// RenderBanner returns the OMEGA banner in the primary color, or a compact
// fallback below 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
