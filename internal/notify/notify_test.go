package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTray_AutoDismiss(t *testing.T) {
	tray := NewTray(20*time.Millisecond, nil)
	defer tray.Close()

	tray.ShowSuccess("Coleta Confirmada!", "Produtos coletados com sucesso.")
	visible := tray.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, KindSuccess, visible[0].Kind)
	assert.NotEmpty(t, visible[0].ID)
	assert.Equal(t, "Produtos coletados com sucesso.", visible[0].Message)

	require.Eventually(t, func() bool { return len(tray.Visible()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestTray_DismissAndClose(t *testing.T) {
	tray := NewTray(time.Hour, nil)
	tray.ShowInfo("Atualizado")
	tray.ShowWarning("Atenção", "Continuando para a entrega...")

	visible := tray.Visible()
	require.Len(t, visible, 2)
	assert.NotEqual(t, visible[0].ID, visible[1].ID)

	tray.Dismiss(visible[0].ID)
	tray.Dismiss("missing")
	require.Len(t, tray.Visible(), 1)

	tray.Close()
	assert.Len(t, tray.Visible(), 1, "close stops timers but keeps toasts")
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	r.ShowError("Erro")
	r.ShowInfo("Seleção Confirmada", "Você já possui os produtos")
	r.ShowInfo("Atenção")

	assert.Equal(t, 2, r.Count(KindInfo))
	assert.Equal(t, 1, r.Count(KindError))
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "Atenção", last.Title)
	assert.Len(t, r.Toasts(), 3)
}
