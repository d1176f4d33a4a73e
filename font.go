package main

import (
	"bytes"
	"log"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	titleFace  text.Face
	labelFace  text.Face
	keycapFace text.Face
	barFace    text.Face
)

func initFont() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to parse font: %v", err)
	}
	titleFace = &text.GoTextFace{Source: src, Size: 20}
	labelFace = &text.GoTextFace{Source: src, Size: 15}
	keycapFace = &text.GoTextFace{Source: src, Size: 11}
	barFace = &text.GoTextFace{Source: src, Size: 13}
}
