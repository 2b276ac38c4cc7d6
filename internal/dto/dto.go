// Package dto shapes models into the JSON bodies returned by the API.
package dto

import (
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
)

type Skill struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

func ToSkill(s models.Skill) Skill {
	return Skill{ID: s.ID, Name: s.Name, Category: s.Category}
}

func ToSkills(skills []models.Skill) []Skill {
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		out = append(out, ToSkill(s))
	}
	return out
}

type User struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Bio       string        `json:"bio"`
	Avatar    models.Avatar `json:"avatar"`
	Skills    []Skill       `json:"skills"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ToUser never exposes the password hash or reset token.
func ToUser(u *models.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Bio:       u.Bio,
		Avatar:    u.Avatar.Data(),
		Skills:    ToSkills(u.Skills),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUsers(users []models.User) []User {
	out := make([]User, 0, len(users))
	for i := range users {
		out = append(out, ToUser(&users[i]))
	}
	return out
}

// Author is the public summary of a user embedded in other resources.
type Author struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

func toAuthor(id uint, u *models.User) Author {
	if u == nil || u.ID == 0 {
		return Author{ID: id}
	}
	return Author{ID: u.ID, Username: u.Username, Avatar: u.Avatar.Data().URL}
}

type TeamMember struct {
	User uint   `json:"user"`
	Role string `json:"role"`
}

type ProjectSkill struct {
	Name string `json:"name"`
}

type Project struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	CreatedBy      uint           `json:"createdBy"`
	ReqSpots       int            `json:"reqSpots"`
	TeamNum        int            `json:"teamNum"`
	AvailableSpots int            `json:"availableSpots"`
	Likes          []uint         `json:"likes"`
	LikesCount     int            `json:"likesCount"`
	ReqSkills      []ProjectSkill `json:"reqSkills"`
	TeamMembers    []TeamMember   `json:"teamMembers"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func ToProject(p *models.Project) Project {
	out := Project{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		CreatedBy:      p.CreatedBy,
		ReqSpots:       p.ReqSpots,
		TeamNum:        p.TeamCount(),
		AvailableSpots: p.AvailableSpots(),
		Likes:          make([]uint, 0, len(p.Likes)),
		LikesCount:     p.LikesCount(),
		ReqSkills:      make([]ProjectSkill, 0, len(p.ReqSkills)),
		TeamMembers:    make([]TeamMember, 0, len(p.TeamMembers)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, l := range p.Likes {
		out.Likes = append(out.Likes, l.UserID)
	}
	for _, s := range p.ReqSkills {
		out.ReqSkills = append(out.ReqSkills, ProjectSkill{Name: s.Name})
	}
	for _, m := range p.TeamMembers {
		out.TeamMembers = append(out.TeamMembers, TeamMember{User: m.UserID, Role: m.Role})
	}
	return out
}

func ToProjects(projects []models.Project) []Project {
	out := make([]Project, 0, len(projects))
	for i := range projects {
		out = append(out, ToProject(&projects[i]))
	}
	return out
}

// ProjectList is the body of a paginated project listing.
type ProjectList struct {
	Projects         []Project `json:"projects"`
	NumberOfProjects int64     `json:"numberOfProjects"`
	CurrentPage      int       `json:"currentPage"`
	TotalPages       int       `json:"totalPages"`
}

func ToProjectList(res *services.ProjectListResult) ProjectList {
	return ProjectList{
		Projects:         ToProjects(res.Projects),
		NumberOfProjects: res.Total,
		CurrentPage:      res.Page,
		TotalPages:       res.TotalPages,
	}
}

type UserList struct {
	Users         []User `json:"users"`
	NumberOfUsers int64  `json:"numberOfUsers"`
	CurrentPage   int    `json:"currentPage"`
	TotalPages    int    `json:"totalPages"`
}

func ToUserList(res *services.UserListResult) UserList {
	return UserList{
		Users:         ToUsers(res.Users),
		NumberOfUsers: res.Total,
		CurrentPage:   res.Page,
		TotalPages:    res.TotalPages,
	}
}

type Comment struct {
	ID              uint      `json:"id"`
	ProjectID       uint      `json:"projectId"`
	Text            string    `json:"text"`
	Author          Author    `json:"author"`
	ParentCommentID *uint     `json:"parentCommentId"`
	LikesCount      int       `json:"likesCount"`
	Replies         []Comment `json:"replies"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToComment(c *models.Comment) Comment {
	return Comment{
		ID:              c.ID,
		ProjectID:       c.ProjectID,
		Text:            c.Text,
		Author:          toAuthor(c.AuthorID, c.Author),
		ParentCommentID: c.ParentCommentID,
		LikesCount:      len(c.Likes),
		Replies:         []Comment{},
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToCommentTree maps nested nodes, keeping reply order.
func ToCommentTree(nodes []*services.CommentNode) []Comment {
	out := make([]Comment, 0, len(nodes))
	for _, n := range nodes {
		c := ToComment(&n.Comment)
		c.Replies = ToCommentTree(n.Replies)
		out = append(out, c)
	}
	return out
}

type JoinRequest struct {
	ID          uint       `json:"id"`
	ProjectID   uint       `json:"projectId"`
	User        Author     `json:"user"`
	Project     *Summary   `json:"project,omitempty"`
	Status      string     `json:"status"`
	JoinMessage string     `json:"joinMessage"`
	ReviewedBy  *uint      `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Summary names a project without its team and skills.
type Summary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func ToJoinRequest(r *models.JoinRequest) JoinRequest {
	out := JoinRequest{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		User:        toAuthor(r.UserID, r.User),
		Status:      r.Status,
		JoinMessage: r.JoinMessage,
		ReviewedBy:  r.ReviewedBy,
		ReviewedAt:  r.ReviewedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Project != nil && r.Project.ID != 0 {
		out.Project = &Summary{ID: r.Project.ID, Title: r.Project.Title}
	}
	return out
}

func ToJoinRequests(reqs []models.JoinRequest) []JoinRequest {
	out := make([]JoinRequest, 0, len(reqs))
	for i := range reqs {
		out = append(out, ToJoinRequest(&reqs[i]))
	}
	return out
}
