package flag

import "github.com/elC0mpa/cost-advisor/model"

type service struct{}

type FlagService interface {
	GetParsedFlags() (model.Flags, error)
}
