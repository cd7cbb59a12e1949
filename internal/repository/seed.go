package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/edupath/edupath-backend/internal/logger"
	"github.com/edupath/edupath-backend/internal/model"
)

// SeedData is the initial catalogue loaded into empty collections and into
// the application state store at startup.
type SeedData struct {
	Courses      []*model.Course     `json:"courses"`
	BlogPosts    []*model.BlogPost   `json:"blogposts"`
	Testimonials []model.Testimonial `json:"testimonials"`
}

// LoadSeedFile reads seed data from a JSON file. An empty path returns the
// built-in default seed.
func LoadSeedFile(path string) (*SeedData, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var data SeedData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &data, nil
}

// StartSeedWatcher watches the seed file and calls onChange with freshly
// loaded data after edits. It watches the parent directory (not the file) so
// atomic replace sequences are still observed, filters by basename and
// debounces bursty write+chmod/rename event runs. Cancel ctx to stop the
// goroutine and close the watcher.
func StartSeedWatcher(ctx context.Context, path string, onChange func(*SeedData)) error {
	if path == "" {
		return errors.New("seed file path is required")
	}
	if onChange == nil {
		return errors.New("onChange callback is required")
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	reload := func() {
		data, err := LoadSeedFile(path)
		if err != nil {
			logger.WithComponent("seed-watcher").Errorf("reload skipped: %v", err)
			return
		}
		logger.WithComponent("seed-watcher").Info("seed file changed, reloading")
		onChange(data)
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce = time.AfterFunc(200*time.Millisecond, reload)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod|fsnotify.Remove|fsnotify.Rename) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithComponent("seed-watcher").Errorf("watcher error: %v", err)
			}
		}
	}()

	return nil
}

// DefaultSeed returns the catalogue the site launched with.
func DefaultSeed() *SeedData {
	return &SeedData{
		Courses: []*model.Course{
			{
				Title:       "B.Tech Computer Science",
				Category:    model.CategoryUG,
				Duration:    "4 Years",
				Description: "Bachelor of Technology in Computer Science Engineering",
				Eligibility: "10+2 with Physics, Chemistry, Mathematics",
				Fees:        "₹1,00,000 - ₹8,00,000 per year",
				Featured:    true,
			},
			{
				Title:       "MBBS",
				Category:    model.CategoryUG,
				Duration:    "5.5 Years",
				Description: "Bachelor of Medicine and Bachelor of Surgery",
				Eligibility: "10+2 with Physics, Chemistry, Biology",
				Fees:        "₹5,00,000 - ₹25,00,000 per year",
				Featured:    true,
			},
			{
				Title:       "BBA",
				Category:    model.CategoryUG,
				Duration:    "3 Years",
				Description: "Bachelor of Business Administration",
				Eligibility: "10+2 from recognized board",
				Fees:        "₹50,000 - ₹3,00,000 per year",
				Featured:    true,
			},
			{
				Title:       "MBA",
				Category:    model.CategoryPG,
				Duration:    "2 Years",
				Description: "Master of Business Administration",
				Eligibility: "Bachelor degree with minimum 50% marks",
				Fees:        "₹2,00,000 - ₹20,00,000 per year",
				Featured:    true,
			},
			{
				Title:       "BCA",
				Category:    model.CategoryUG,
				Duration:    "3 Years",
				Description: "Bachelor of Computer Applications",
				Eligibility: "10+2 with Mathematics",
				Fees:        "₹30,000 - ₹2,00,000 per year",
			},
			{
				Title:       "B.Com",
				Category:    model.CategoryUG,
				Duration:    "3 Years",
				Description: "Bachelor of Commerce",
				Eligibility: "10+2 from recognized board",
				Fees:        "₹20,000 - ₹1,50,000 per year",
			},
			{
				Title:       "PhD Computer Science",
				Category:    model.CategoryPhD,
				Duration:    "3-5 Years",
				Description: "Doctor of Philosophy in Computer Science",
				Eligibility: "Masters degree with minimum 55% marks",
				Fees:        "₹50,000 - ₹2,00,000 per year",
			},
		},
		BlogPosts: []*model.BlogPost{
			{
				Title:   "Top 10 Career Opportunities in Technology for 2025",
				Slug:    "top-10-career-opportunities-technology-2025",
				Excerpt: "Discover the most promising technology careers that will dominate 2025 and beyond.",
				Content: "Technology continues to evolve at a rapid pace, creating new career opportunities and transforming existing roles.\n\n" +
					"1. **Artificial Intelligence Engineer**: With AI becoming mainstream, companies need specialists to develop and implement AI solutions.\n\n" +
					"2. **Cybersecurity Analyst**: As cyber threats increase, organizations prioritize security experts to protect their digital assets.\n\n" +
					"3. **Data Scientist**: The demand for professionals who can analyze and interpret complex data continues to grow.\n\n" +
					"4. **Cloud Solutions Architect**: As businesses migrate to the cloud, architects who can design scalable solutions are in high demand.\n\n" +
					"5. **Full-Stack Developer**: Versatile developers who can work on both front-end and back-end remain valuable assets.\n\n" +
					"Each of these careers offers excellent growth potential and competitive salaries. The key is to continuously update your skills and stay current with industry trends.",
				Category:       model.BlogCategoryCareer,
				Author:         "Suraj Verma",
				PublishedAt:    "2025-01-15",
				FeaturedImage:  "https://images.pexels.com/photos/3183150/pexels-photo-3183150.jpeg",
				SeoTitle:       "Top 10 Technology Career Opportunities for 2025 | RC Consultancy",
				SeoDescription: "Explore the most promising technology careers in 2025. Get expert guidance on AI, cybersecurity, data science, and more from RC Consultancy.",
			},
			{
				Title:   "Complete Guide to Medical College Admissions in India",
				Slug:    "complete-guide-medical-college-admissions-india",
				Excerpt: "Everything you need to know about MBBS admissions, NEET preparation, and medical college selection.",
				Content: "Getting admission to a medical college in India is highly competitive. This guide will help you navigate the process successfully.\n\n" +
					"**NEET UG Examination**\n\n" +
					"The National Eligibility cum Entrance Test is the single entrance exam for MBBS and BDS admissions in India. Candidates must have completed 10+2 with Physics, Chemistry, Biology, and English.\n\n" +
					"**Preparation Strategy**\n\n" +
					"Start early, follow NCERT textbooks as the foundation, take regular mock tests and focus on weak areas through targeted practice.\n\n" +
					"**College Selection**\n\n" +
					"Consider NIRF rankings, faculty quality, infrastructure and hospital facilities, fee structure and location when choosing medical colleges.",
				Category:      model.BlogCategoryEducation,
				Author:        "Deepanshu Verma",
				PublishedAt:   "2025-01-10",
				FeaturedImage: "https://images.pexels.com/photos/4033148/pexels-photo-4033148.jpeg",
			},
			{
				Title:   "Personal Finance Tips for Fresh Graduates",
				Slug:    "personal-finance-tips-fresh-graduates",
				Excerpt: "Essential financial advice for new graduates entering the workforce.",
				Content: "Starting your career is exciting, but managing finances can be overwhelming. Here are essential tips for fresh graduates.\n\n" +
					"**Create a Budget**\n\n" +
					"Track your income and expenses to understand where your money goes. Use the 50/30/20 rule: needs, wants, savings.\n\n" +
					"**Build an Emergency Fund**\n\n" +
					"Start with ₹10,000 and gradually build it to cover 3-6 months of expenses.\n\n" +
					"**Start Investing Early**\n\n" +
					"Even small amounts invested regularly can grow significantly due to **compound interest**.",
				Category:      model.BlogCategoryFinance,
				Author:        "Suraj Verma",
				PublishedAt:   "2025-01-08",
				FeaturedImage: "https://images.pexels.com/photos/164527/pexels-photo-164527.jpeg",
			},
		},
		Testimonials: []model.Testimonial{
			{
				ID:      "1",
				Name:    "Priya Sharma",
				Course:  "B.Tech Computer Science",
				Message: "RC Consultancy helped me get admission to my dream college. Their guidance throughout the process was invaluable.",
				Rating:  5,
				Image:   "https://images.pexels.com/photos/733872/pexels-photo-733872.jpeg",
			},
			{
				ID:      "2",
				Name:    "Rahul Kumar",
				Course:  "MBBS",
				Message: "The team at RC Consultancy provided excellent support for my NEET preparation and college selection. Highly recommended!",
				Rating:  5,
				Image:   "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg",
			},
			{
				ID:      "3",
				Name:    "Anjali Patel",
				Course:  "MBA",
				Message: "Thanks to RC Consultancy, I secured admission in a top MBA program. Their career counseling was spot on.",
				Rating:  5,
				Image:   "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg",
			},
		},
	}
}
