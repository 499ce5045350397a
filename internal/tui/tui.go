// Package tui renders a live view of one sync connection.
package tui

import (
	"context"

	"github.com/MKhiriev/go-ship-sync/internal/client"
	"github.com/MKhiriev/go-ship-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the monitor until the user quits or ctx is done.
func Run(ctx context.Context, c client.Client, build models.BuildInfo) error {
	model := newMonitorModel(ctx, c, build)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
