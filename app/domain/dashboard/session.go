package dashboard

import (
	"menlo.ai/creator-insights-gateway/app/domain/profile"
	"menlo.ai/creator-insights-gateway/app/domain/responsecache"
)

// SessionFactory snapshots the active profile together with the shared response cache.
type SessionFactory struct {
	profiles *profile.Store
	cache    *responsecache.Cache
}

func NewSessionFactory(profiles *profile.Store, cache *responsecache.Cache) *SessionFactory {
	return &SessionFactory{
		profiles: profiles,
		cache:    cache,
	}
}

func (f *SessionFactory) Session() *Session {
	return &Session{
		Profile: f.profiles.Get(),
		Cache:   f.cache,
	}
}

func (f *SessionFactory) Profiles() *profile.Store {
	return f.profiles
}

func (f *SessionFactory) Cache() *responsecache.Cache {
	return f.cache
}
