/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package estimate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OpeningType is the kind of hole cut into a wall.
type OpeningType string

const (
	Door   OpeningType = "door"
	Window OpeningType = "window"
)

// Opening is a door or window. Dimensions are in feet; positions are measured
// from the wall's left edge and, for windows, from the floor.
type Opening struct {
	ID        string      `json:"id" yaml:"id"`
	Type      OpeningType `json:"type" yaml:"type"`
	Width     float64     `json:"width" yaml:"width"`
	Height    float64     `json:"height" yaml:"height"`
	PositionX float64     `json:"positionX" yaml:"positionX"`
	PositionY float64     `json:"positionY,omitempty" yaml:"positionY,omitempty"`
}

// Wall is one side of a room.
type Wall struct {
	ID     string `json:"id" yaml:"id"`
	RoomID string `json:"roomId" yaml:"roomId"`
	// Name is the compass side: north, south, east or west.
	Name     string    `json:"name" yaml:"name"`
	Length   float64   `json:"length" yaml:"length"`
	Height   float64   `json:"height" yaml:"height"`
	PaintID  string    `json:"paintId,omitempty" yaml:"paintId,omitempty"`
	Openings []Opening `json:"openings" yaml:"openings"`
}

// Room is a rectangular room placed on the floor plan canvas.
type Room struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Walls  []Wall  `json:"walls" yaml:"walls"`
}

// Floor is one level of the project.
type Floor struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Rooms []Room `json:"rooms" yaml:"rooms"`
}

// ParseFloors decodes a JSON or YAML floor plan: either a list of floors or
// an object with a "floors" list.
func ParseFloors(data []byte) ([]Floor, error) {
	var floors []Floor
	if err := yaml.Unmarshal(data, &floors); err == nil {
		return floors, nil
	}
	var doc struct {
		Floors []Floor `yaml:"floors"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing floor plan: %w", err)
	}
	return doc.Floors, nil
}

// LoadFloors reads a floor plan file.
func LoadFloors(path string) ([]Floor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading floor plan: %w", err)
	}
	return ParseFloors(data)
}

// Walls returns every wall on every floor, in plan order.
func Walls(floors []Floor) []Wall {
	var walls []Wall
	for _, f := range floors {
		for _, r := range f.Rooms {
			walls = append(walls, r.Walls...)
		}
	}
	return walls
}
