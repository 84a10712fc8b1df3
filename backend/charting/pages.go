package charting

import (
	"github.com/fernandosanchezjr/devsurvey/config"
	"github.com/fernandosanchezjr/devsurvey/survey"
	"html/template"
	"io"
)

const pageHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
label { display: inline-block; min-width: 8em; }
.spinner { width: 40px; height: 40px; position: relative; margin: 2em; display: none; }
.loading .spinner { display: block; }
.double-bounce1, .double-bounce2 {
  width: 100%; height: 100%; border-radius: 50%; background-color: #333; opacity: 0.6;
  position: absolute; top: 0; left: 0; animation: bounce 2.0s infinite ease-in-out;
}
.double-bounce2 { animation-delay: -1.0s; }
@keyframes bounce { 0%, 100% { transform: scale(0.0); } 50% { transform: scale(1.0); } }
</style>
</head>
<body>
`

var formTemplate = template.Must(template.New("form").Parse(pageHead + `
<h1>{{.Title}}</h1>
<form id="ask-form" action="/ask" method="get">
<p><label for="topic">Topic</label>
<select id="topic" name="topic">
{{range .Topics}}<option value="{{.Name}}">{{.Title}}</option>
{{end}}</select></p>
{{range .Demographics}}<p><label for="{{.Name}}">{{.Title}}</label>
<select id="{{.Name}}" name="{{.Name}}">
<option value="">Any</option>
{{range .Options}}<option value="{{.}}">{{.}}</option>
{{end}}</select></p>
{{end}}<p><label for="sort">Sort by population</label>
<input id="sort" type="checkbox" name="sort" value="true"></p>
<button id="ask" type="submit">Ask</button>
</form>
<div class="chart-container">
<div class="spinner"><div class="double-bounce1"></div><div class="double-bounce2"></div></div>
</div>
<script>
document.getElementById('ask-form').addEventListener('submit', function () {
  document.body.classList.add('loading');
});
window.addEventListener('pageshow', function () {
  document.body.classList.remove('loading');
});
</script>
</body>
</html>
`))

var emptyTemplate = template.Must(template.New("empty").Parse(pageHead + `
<h1>{{.Title}}</h1>
<p id="sample-size">{{.NoData}}</p>
<p>{{.Invite}} <a alt="Stack Overflow user settings" href="{{.InviteURL}}">here</a>.</p>
<p><a href="/">Ask again</a></p>
</body>
</html>
`))

var errorTemplate = template.Must(template.New("error").Parse(pageHead + `
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Try again</a></p>
</body>
</html>
`))

type formPage struct {
	Title        string
	Topics       []config.Topic
	Demographics []config.Demographic
}

func RenderForm(w io.Writer, title string, topics []config.Topic, demographics []config.Demographic) error {
	return formTemplate.Execute(w, formPage{Title: title, Topics: topics, Demographics: demographics})
}

// RenderEmpty reports that the selection matched nobody.
func RenderEmpty(w io.Writer, title string) error {
	return emptyTemplate.Execute(w, map[string]interface{}{
		"Title":     title,
		"NoData":    survey.NoDataText,
		"Invite":    survey.InviteText,
		"InviteURL": survey.InviteURL,
	})
}

func RenderError(w io.Writer, title, message string) error {
	return errorTemplate.Execute(w, map[string]string{"Title": title, "Message": message})
}
