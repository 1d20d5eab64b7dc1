package dto

import "time"

type MemberOutput struct {
	Name      string
	Focusing  bool
	StartedAt time.Time
}

type GroupOutput struct {
	Code    string
	Members []MemberOutput
}
