package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	exerciseMin   *widget.Entry
	voiceEnabled  *widget.Check
	voiceName     *widget.Entry
	voiceModel    *widget.Entry
	logLevel      *widget.Select
	launchAtLogin *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("BlinkRest Settings")

	exerciseMin := widget.NewEntry()
	voiceEnabled := widget.NewCheck("Spoken guidance", nil)
	voiceName := widget.NewEntry()
	voiceModel := widget.NewEntry()
	logLevel := widget.NewSelect(logLevels, nil)
	launchAtLogin := widget.NewCheck("Launch at login", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Exercise", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Blinking session length"), exerciseMin, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Voice", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		voiceEnabled,
		container.NewHBox(widget.NewLabel("Voice"), voiceName),
		container.NewHBox(widget.NewLabel("Model"), voiceModel),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
		launchAtLogin,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 380))

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		exerciseMin:   exerciseMin,
		voiceEnabled:  voiceEnabled,
		voiceName:     voiceName,
		voiceModel:    voiceModel,
		logLevel:      logLevel,
		launchAtLogin: launchAtLogin,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.exerciseMin.SetText(fmt.Sprintf("%d", int(settings.ExerciseDuration.Minutes())))
	prefs.voiceEnabled.SetChecked(settings.VoiceEnabled)
	prefs.voiceName.SetText(settings.VoiceName)
	prefs.voiceModel.SetText(settings.VoiceModel)
	prefs.logLevel.SetSelected(settings.LogLevel)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.exerciseMin.Text); ok {
		settings.ExerciseDuration = time.Duration(minutes) * time.Minute
	}
	if name := strings.TrimSpace(prefs.voiceName.Text); name != "" {
		settings.VoiceName = name
	}
	if model := strings.TrimSpace(prefs.voiceModel.Text); model != "" {
		settings.VoiceModel = model
	}
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}
	settings.VoiceEnabled = prefs.voiceEnabled.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
