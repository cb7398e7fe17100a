package service

import (
	"coreclad-be/pkg/catalog"
	"coreclad-be/pkg/session"
)

// AdminClient is the per-browser state: login Store plus the admin product view.
type AdminClient = session.Client[*catalog.View]

type ClientRegistry = session.Registry[*catalog.View]
