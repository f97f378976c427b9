// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Kravets

package models

// WordErrorType tags a word in an assessment result with the kind of
// pronunciation error the service detected, if any.
type WordErrorType string

const (
	WordErrorNone            WordErrorType = "None"
	WordErrorMispronounced   WordErrorType = "Mispronunciation"
	WordErrorOmission        WordErrorType = "Omission"
	WordErrorInsertion       WordErrorType = "Insertion"
	WordErrorUnexpectedBreak WordErrorType = "UnexpectedBreak"
	WordErrorMissingBreak    WordErrorType = "MissingBreak"
)

// Assessment is the result of scoring a recorded utterance against a
// reference text. The shape mirrors the cloud speech-assessment response;
// the client consumes it as-is and performs no scoring of its own.
type Assessment struct {
	// AccuracyScore rates how closely phonemes match a native speaker, 0-100.
	AccuracyScore float64 `json:"accuracyScore"`

	// FluencyScore rates the use of silent breaks between words, 0-100.
	FluencyScore float64 `json:"fluencyScore"`

	// CompletenessScore is the ratio of pronounced words to reference words.
	CompletenessScore float64 `json:"completenessScore"`

	// PronunciationScore is the overall weighted score, 0-100.
	PronunciationScore float64 `json:"pronunciationScore"`

	// Words is the per-word breakdown in reference-text order.
	Words []WordAssessment `json:"words"`
}

// WordAssessment scores a single word of the reference text.
type WordAssessment struct {
	Word          string        `json:"word"`
	AccuracyScore float64       `json:"accuracyScore"`
	ErrorType     WordErrorType `json:"errorType,omitempty"`

	// Phonemes is the per-phoneme breakdown for the word.
	Phonemes []PhonemeAssessment `json:"phonemes,omitempty"`
}

// PhonemeAssessment scores a single phoneme of a word.
type PhonemeAssessment struct {
	Phoneme       string  `json:"phoneme"`
	AccuracyScore float64 `json:"accuracyScore"`
}
