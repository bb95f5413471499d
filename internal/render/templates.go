package render

import "html/template"

var fragments = template.Must(template.New("fragments").Parse(`
{{define "leaderboard"}}{{range .}}<tr{{with .Tier}} class="{{.}}"{{end}}><td>{{.Rank}}</td><td>{{.Name}}</td><td class="points">{{.Points}}</td><td>{{.Milestones}}</td><td>{{.Custom}}</td><td>{{.LastActivity}}</td><td>{{.Trend}}</td></tr>{{end}}{{end}}

{{define "feed"}}{{range .}}<div class="{{.Class}}"><span class="activity-time">{{.Time}}</span><span class="activity-team">{{.Team}}</span><span class="activity-event">{{.Event}}{{with .Points}} {{.}}{{end}}</span></div>{{else}}<p class="no-activity">No activity yet</p>{{end}}{{end}}

{{define "grid"}}{{range .}}<div class="milestone-item{{if .Completed}} completed{{end}}"><h4>{{.Name}}</h4><p class="milestone-points">{{.Points}} points</p><p class="milestone-teams">{{.Teams}}</p></div>{{end}}{{end}}

{{define "achievements"}}{{range .}}<div class="custom-achievement"><div class="achievement-header"><span class="achievement-team">{{.Team}}</span><span class="achievement-date">{{.Date}}</span></div><h4 class="achievement-name">{{.Name}}</h4><p class="achievement-description">{{.Description}}</p></div>{{else}}<p class="no-achievements">No custom achievements yet. Be the first to go beyond the milestones!</p>{{end}}{{end}}
`))
