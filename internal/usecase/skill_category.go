package usecase

import (
	"regexp"
	"strings"
)

const CategoryOther = "Other"

type categoryRule struct {
	name    string
	pattern *regexp.Regexp
}

func wordsPattern(words string) *regexp.Regexp {
	return regexp.MustCompile(`\b(` + words + `)\b`)
}

// Rules are evaluated in order; the first match wins.
var categoryRules = []categoryRule{
	{"Programming", wordsPattern(`java|python|javascript|typescript|c\+\+|c#|go|rust|kotlin|swift|php|ruby|scala|r|matlab|perl|haskell|elixir|clojure|dart`)},
	{"Frontend", wordsPattern(`react|angular|vue|svelte|ember|backbone|jquery|html|css|sass|less|bootstrap|tailwind|webpack|vite|babel|redux|mobx|next\.?js|nuxt\.?js|gatsby`)},
	{"Backend", wordsPattern(`node\.?js|express|spring|django|flask|fastapi|laravel|ruby on rails|asp\.net|nestjs|koa|hapi|micronaut|quarkus|graphql|rest api|microservices|serverless`)},
	{"Database", wordsPattern(`mysql|postgresql|mongodb|redis|elasticsearch|cassandra|oracle|sql server|sqlite|dynamodb|cosmosdb|firebase|realm|hbase|couchbase|neo4j|arangodb`)},
	{"Cloud & DevOps", wordsPattern(`aws|azure|gcp|google cloud|amazon web services|docker|kubernetes|terraform|ansible|jenkins|gitlab|github actions|circleci|travis ci|helm|istio|linkerd|openshift`)},
	{"Mobile", wordsPattern(`android|ios|react native|flutter|xamarin|ionic|cordova|phonegap|swiftui|jetpack compose|kotlin multiplatform`)},
	{"Data Science & AI", wordsPattern(`tensorflow|pytorch|keras|scikit-learn|pandas|numpy|matplotlib|seaborn|jupyter|tableau|power bi|apache spark|hadoop|kafka|airflow|mlflow|kubeflow|hugging face|openai`)},
	{"Testing", wordsPattern(`junit|testng|jest|mocha|chai|cypress|selenium|playwright|pytest|rspec|cucumber|jmeter|postman|soapui`)},
	{"Tools & Methodologies", wordsPattern(`git|svn|mercurial|jira|confluence|slack|teams|zoom|agile|scrum|kanban|waterfall|devops|ci/cd|tdd|bdd|domain driven design|clean architecture`)},
	{"Soft Skills", wordsPattern(`communication|leadership|teamwork|problem solving|critical thinking|adaptability|time management|creativity|collaboration|presentation|negotiation|conflict resolution|emotional intelligence`)},
}

// ClassifySkill returns the category bucket for a skill name.
func ClassifySkill(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return CategoryOther
	}
	for _, r := range categoryRules {
		if r.pattern.MatchString(lower) {
			return r.name
		}
	}
	return CategoryOther
}
