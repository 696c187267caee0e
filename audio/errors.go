// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidSampleRate     = errors.New("audio: sample rate must be positive")
	ErrNoChannels            = errors.New("audio: buffer has no channels")
	ErrNoSamples             = errors.New("audio: buffer has no samples")
	ErrChannelLengthMismatch = errors.New("audio: channels differ in length")
	ErrInvalidRange          = errors.New("audio: range produces no samples")
	ErrInvalidRatio          = errors.New("audio: conversion ratio must be positive")
	ErrInvalidDstSize        = errors.New("audio: dst size must be a multiple of channels")
)
