package cli

// sampleSnippet and sampleComments are loaded by review --sample.
const sampleSnippet = `def get_active_users(users):
    results = []
    for u in users:
        if u.is_active == True and u.profile_complete == True:
            results.append(u)
    return results`

var sampleComments = []string{
	"This is inefficient. Don't loop twice conceptually.",
	"Variable 'u' is a bad name.",
	"Boolean comparison '== True' is redundant.",
}
