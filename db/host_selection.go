package db

import (
	"github.com/gocql/gocql"
	"go.uber.org/atomic"
)

// dcInferringPolicy routes to the data center of the first host it learns
// about, falling back to round robin until then.
type dcInferringPolicy struct {
	childPolicy  atomic.Value
	isLocalDcSet atomic.Bool
}

type childPolicyWrapper struct {
	policy gocql.HostSelectionPolicy
	dc     string
}

func NewDefaultHostSelectionPolicy() gocql.HostSelectionPolicy {
	return gocql.TokenAwareHostPolicy(NewDcInferringPolicy(), gocql.ShuffleReplicas())
}

func NewDcInferringPolicy() *dcInferringPolicy {
	policy := dcInferringPolicy{}
	policy.childPolicy.Store(childPolicyWrapper{policy: gocql.RoundRobinHostPolicy()})
	return &policy
}

func (p *dcInferringPolicy) LocalDc() (string, bool) {
	if !p.isLocalDcSet.Load() {
		return "", false
	}
	return p.localDc(), true
}

func (p *dcInferringPolicy) localDc() string {
	wrapper := p.childPolicy.Load().(childPolicyWrapper)
	return wrapper.dc
}

func (p *dcInferringPolicy) AddHost(host *gocql.HostInfo) {
	if p.isLocalDcSet.CAS(false, true) {
		childPolicy := gocql.DCAwareRoundRobinPolicy(host.DataCenter())
		p.childPolicy.Store(childPolicyWrapper{policy: childPolicy, dc: host.DataCenter()})
		childPolicy.AddHost(host)
	} else {
		p.getChildPolicy().AddHost(host)
	}
}

func (p *dcInferringPolicy) getChildPolicy() gocql.HostSelectionPolicy {
	wrapper := p.childPolicy.Load().(childPolicyWrapper)
	return wrapper.policy
}

func (p *dcInferringPolicy) RemoveHost(host *gocql.HostInfo) {
	p.getChildPolicy().RemoveHost(host)
}

func (p *dcInferringPolicy) HostUp(host *gocql.HostInfo) {
	p.getChildPolicy().HostUp(host)
}

func (p *dcInferringPolicy) HostDown(host *gocql.HostInfo) {
	p.getChildPolicy().HostDown(host)
}

func (p *dcInferringPolicy) SetPartitioner(partitioner string) {
	p.getChildPolicy().SetPartitioner(partitioner)
}

func (p *dcInferringPolicy) KeyspaceChanged(e gocql.KeyspaceUpdateEvent) {
	p.getChildPolicy().KeyspaceChanged(e)
}

func (p *dcInferringPolicy) Init(*gocql.Session) {
	// TAP parent policy does not call init on "fallback policy"
}

func (p *dcInferringPolicy) IsLocal(host *gocql.HostInfo) bool {
	return p.getChildPolicy().IsLocal(host)
}

func (p *dcInferringPolicy) Pick(query gocql.ExecutableQuery) gocql.NextHost {
	return p.getChildPolicy().Pick(query)
}
