package webserver

import (
	"html/template"

	"github.com/stake-plus/expertdesk/src/persona"
)

const (
	appTitle          = "AI専門家相談アプリ"
	questionHint      = "例: Pythonでファイルを読み込む方法を教えてください"
	loadingText       = "専門家が回答を準備中です..."
	successBanner     = "✅ 回答が完了しました！"
	answerHeading     = "📝 専門家からの回答:"
	cautionHeading    = "⚠️ 使用上の注意"
	selectorPrompt    = "相談したい専門家を選択してください:"
	questionPrompt    = "質問や相談内容を入力してください:"
	submitButtonLabel = "🚀 相談する"
)

type pageView struct {
	Personas  []persona.Persona
	Selected  string
	Question  string
	Warning   string
	HasResult bool
	Answer    template.HTML
	Failure   string
}

var pageFuncs = template.FuncMap{
	"title":          func() string { return appTitle },
	"questionHint":   func() string { return questionHint },
	"loadingText":    func() string { return loadingText },
	"successBanner":  func() string { return successBanner },
	"answerHeading":  func() string { return answerHeading },
	"cautionHeading": func() string { return cautionHeading },
	"selectorPrompt": func() string { return selectorPrompt },
	"questionPrompt": func() string { return questionPrompt },
	"submitLabel":    func() string { return submitButtonLabel },
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>🤖 {{title}}</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
main { flex: 1; padding: 2rem; max-width: 60rem; }
aside { width: 20rem; padding: 2rem 1rem; background: #f4f5f7; min-height: 100vh; }
.info { background: #e8f1fb; padding: .75rem; border-radius: .25rem; }
.warning { background: #fff5d6; padding: .75rem; border-radius: .25rem; }
.success { background: #e6f6ea; padding: .75rem; border-radius: .25rem; }
.failure { background: #fdeaea; padding: .75rem; border-radius: .25rem; }
#loading { display: none; }
textarea { width: 100%; height: 100px; }
</style>
</head>
<body>
<main>
<h1>🤖 {{title}}</h1>
<h2>📋 アプリの概要</h2>
<p>このアプリは、様々な分野の専門家AIに相談できるサービスです。質問したい分野を選択し、質問内容を入力することで、その分野の専門家として回答します。</p>
<h2>🚀 使用方法</h2>
<ol>
<li><strong>専門家を選択</strong>: ラジオボタンから相談したい分野の専門家を選択してください</li>
<li><strong>質問を入力</strong>: テキストエリアに質問や相談内容を入力してください</li>
<li><strong>送信</strong>: 「相談する」ボタンをクリックして回答を受け取ってください</li>
</ol>
<hr>
<form method="post" action="/consult" onsubmit="document.getElementById('loading').style.display='block'">
<p>{{selectorPrompt}}</p>
{{range .Personas}}
<label><input type="radio" name="persona" value="{{.ID}}" data-description="{{.Description}}"{{if eq .ID $.Selected}} checked{{end}} onchange="document.getElementById('description').textContent=this.dataset.description"> {{.ID}}</label><br>
{{end}}
{{range .Personas}}{{if eq .ID $.Selected}}<p id="description" class="info">{{.Description}}</p>{{end}}{{end}}
<p>{{questionPrompt}}</p>
<textarea name="question" placeholder="{{questionHint}}">{{.Question}}</textarea>
<p><button type="submit">{{submitLabel}}</button></p>
<p id="loading">{{loadingText}}</p>
</form>
{{if .Warning}}<p class="warning">⚠️ {{.Warning}}</p>{{end}}
{{if .HasResult}}
{{if .Failure}}
<div class="failure">{{.Failure}}</div>
{{else}}
<p class="success">{{successBanner}}</p>
<h3>{{answerHeading}}</h3>
<div class="answer">{{.Answer}}</div>
{{end}}
{{end}}
</main>
<aside>
<h2>{{cautionHeading}}</h2>
<ul>
{{range .Personas}}<li class="caution">{{.Caution}}</li>
{{end}}
</ul>
</aside>
</body>
</html>
`))
