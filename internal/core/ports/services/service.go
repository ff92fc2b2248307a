package services

// ServiceContainer bundles every service facade handed to the route
// registration at startup.
type ServiceContainer struct {
	Journal  JournalSvcFacade
	Tag      TagSvcFacade
	Category CategorySvcFacade
	Project  ProjectSvcFacade
	User     UserSvcFacade
	Token    TokenSvcFacade
	Google   GoogleOAuthSvcFacade
	Media    MediaSvcFacade
}
