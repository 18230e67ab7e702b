package ui

import (
	"fmt"
	"io"
	"log"

	"StampBoard/internal/export"
	"StampBoard/internal/record"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

func (a *App) saveRecord() {
	rec, err := a.board.Record()
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if writer == nil {
			return
		}
		defer closeLogged(writer)

		data, err := record.Marshal(rec)
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if _, err := writer.Write(data); err != nil {
			log.Printf("[BOARD] save %s: %v", writer.URI(), err)
			dialog.ShowError(err, a.win)
			return
		}
		log.Printf("[BOARD] saved %d stamps to %s", len(rec.Points), writer.URI())
	}, a.win)
}

func (a *App) openRecord() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if reader == nil {
			return
		}
		defer closeLogged(reader)

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("read %s: %w", reader.URI(), err), a.win)
			return
		}
		log.Printf("[BOARD] read %d bytes from %s", len(data), reader.URI())
		a.play(data)
	}, a.win)
}

func (a *App) exportPDF() {
	rec, err := a.board.Record()
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if writer == nil {
			return
		}
		defer closeLogged(writer)
		if err := export.WritePDF(writer, rec, export.DefaultOptions()); err != nil {
			dialog.ShowError(err, a.win)
		}
	}, a.win)
}

func closeLogged(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("Error closing file: %v", err)
	}
}
