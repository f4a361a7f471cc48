package config

import (
	"time"

	"github.com/datastax/cassandra-datatables/log"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type ConfigMock struct {
	mock.Mock
}

func NewConfigMock() *ConfigMock {
	return &ConfigMock{}
}

func (o *ConfigMock) Default() *ConfigMock {
	o.On("CaseInsensitive").Return(true)
	o.On("Debug").Return(false)
	o.On("DefaultPageLength").Return(10)
	o.On("RefreshInterval").Return(time.Duration(0))
	o.On("Naming").Return(NamingConventionFn(NewDefaultNaming))
	o.On("Logger").Return(log.NewZapLogger(zap.NewNop()))
	return o
}

func (o *ConfigMock) CaseInsensitive() bool {
	args := o.Called()
	return args.Bool(0)
}

func (o *ConfigMock) Debug() bool {
	args := o.Called()
	return args.Bool(0)
}

func (o *ConfigMock) DefaultPageLength() int {
	args := o.Called()
	return args.Int(0)
}

func (o *ConfigMock) RefreshInterval() time.Duration {
	args := o.Called()
	return args.Get(0).(time.Duration)
}

func (o *ConfigMock) Naming() NamingConventionFn {
	args := o.Called()
	return args.Get(0).(NamingConventionFn)
}

func (o *ConfigMock) Logger() log.Logger {
	args := o.Called()
	return args.Get(0).(log.Logger)
}
