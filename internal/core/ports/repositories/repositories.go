package repositories

// RepositoryProvider bundles every repository implementation handed to the
// service container at startup.
type RepositoryProvider struct {
	JournalRepo  JournalRepository
	TagRepo      TagRepository
	CategoryRepo CategoryRepository
	ProjectRepo  ProjectRepository
	UserRepo     UserRepository
	Media        MediaStore
}
