// internal/service/quotes.go
package service

import (
    "fmt"
    "math/rand"
    "strings"
)

// Quote is one entry of the curated motivational set. Kind selects the
// HTML styling ("quote" or "shayari").
type Quote struct {
    Text   string `json:"text"`
    Author string `json:"author"`
    Kind   string `json:"kind"`
}

var motivationalQuotes = []Quote{
    // Steve Jobs
    {Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
    {Text: "Your time is limited, don't waste it living someone else's life.", Author: "Steve Jobs"},
    {Text: "Stay hungry, stay foolish.", Author: "Steve Jobs"},
    {Text: "Innovation distinguishes between a leader and a follower.", Author: "Steve Jobs"},
    // Winston Churchill
    {Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill"},
    {Text: "If you're going through hell, keep going.", Author: "Winston Churchill"},
    {Text: "Never give in, never give in, never, never, never.", Author: "Winston Churchill"},
    // Theodore Roosevelt
    {Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
    {Text: "Do what you can, with what you have, where you are.", Author: "Theodore Roosevelt"},
    // Eleanor Roosevelt
    {Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
    {Text: "No one can make you feel inferior without your consent.", Author: "Eleanor Roosevelt"},
    // Abraham Lincoln
    {Text: "The best way to predict the future is to create it.", Author: "Abraham Lincoln"},
    {Text: "In the end, it's not the years in your life that count. It's the life in your years.", Author: "Abraham Lincoln"},
    // Mahatma Gandhi
    {Text: "Be the change you wish to see in the world.", Author: "Mahatma Gandhi"},
    {Text: "Strength does not come from physical capacity. It comes from an indomitable will.", Author: "Mahatma Gandhi"},
    {Text: "The future depends on what you do today.", Author: "Mahatma Gandhi"},
    // Nelson Mandela
    {Text: "It always seems impossible until it's done.", Author: "Nelson Mandela"},
    {Text: "I never lose. I either win or learn.", Author: "Nelson Mandela"},
    {Text: "The greatest glory in living lies not in never falling, but in rising every time we fall.", Author: "Nelson Mandela"},
    // Albert Einstein
    {Text: "Imagination is more important than knowledge.", Author: "Albert Einstein"},
    {Text: "Life is like riding a bicycle. To keep your balance, you must keep moving.", Author: "Albert Einstein"},
    {Text: "In the middle of difficulty lies opportunity.", Author: "Albert Einstein"},
    // Mark Twain
    {Text: "The secret of getting ahead is getting started.", Author: "Mark Twain"},
    {Text: "Twenty years from now you will be more disappointed by the things you didn't do than by the ones you did.", Author: "Mark Twain"},
    // Thomas Edison
    {Text: "I have not failed. I've just found 10,000 ways that won't work.", Author: "Thomas Edison"},
    {Text: "Our greatest weakness lies in giving up. The most certain way to succeed is always to try just one more time.", Author: "Thomas Edison"},
    {Text: "Genius is one percent inspiration and ninety-nine percent perspiration.", Author: "Thomas Edison"},
    // Walt Disney
    {Text: "The way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
    {Text: "All our dreams can come true, if we have the courage to pursue them.", Author: "Walt Disney"},
    // Oprah Winfrey
    {Text: "The biggest adventure you can take is to live the life of your dreams.", Author: "Oprah Winfrey"},
    {Text: "Turn your wounds into wisdom.", Author: "Oprah Winfrey"},
    {Text: "You become what you believe.", Author: "Oprah Winfrey"},
    // Muhammad Ali
    {Text: "Don't count the days, make the days count.", Author: "Muhammad Ali"},
    {Text: "He who is not courageous enough to take risks will accomplish nothing in life.", Author: "Muhammad Ali"},
    {Text: "Impossible is just a big word thrown around by small men.", Author: "Muhammad Ali"},
    // Bruce Lee
    {Text: "Do not pray for an easy life, pray for the strength to endure a difficult one.", Author: "Bruce Lee"},
    {Text: "Defeat is a state of mind; no one is ever defeated until defeat has been accepted as a reality.", Author: "Bruce Lee"},
    // Jim Rohn
    {Text: "Don't wish it were easier. Wish you were better.", Author: "Jim Rohn"},
    {Text: "Discipline is the bridge between goals and accomplishment.", Author: "Jim Rohn"},
    // Tony Robbins
    {Text: "The only impossible journey is the one you never begin.", Author: "Tony Robbins"},
    {Text: "Setting goals is the first step in turning the invisible into the visible.", Author: "Tony Robbins"},
    // Zig Ziglar
    {Text: "What you get by achieving your goals is not as important as what you become by achieving your goals.", Author: "Zig Ziglar"},
    {Text: "You don't have to be great to start, but you have to start to be great.", Author: "Zig Ziglar"},
    // Others
    {Text: "It does not matter how slowly you go as long as you do not stop.", Author: "Confucius"},
    {Text: "Everything you've ever wanted is on the other side of fear.", Author: "George Addair"},
    {Text: "The best time to plant a tree was 20 years ago. The second best time is now.", Author: "Chinese Proverb"},
    {Text: "Dream big and dare to fail.", Author: "Norman Vaughan"},
    {Text: "Success usually comes to those who are too busy to be looking for it.", Author: "Henry David Thoreau"},
    {Text: "Don't be afraid to give up the good to go for the great.", Author: "John D. Rockefeller"},
    {Text: "It's not whether you get knocked down, it's whether you get up.", Author: "Vince Lombardi"},
    {Text: "Don't watch the clock; do what it does. Keep going.", Author: "Sam Levenson"},
    {Text: "The only limit to our realization of tomorrow is our doubts of today.", Author: "Franklin D. Roosevelt"},
    {Text: "You are never too old to set another goal or to dream a new dream.", Author: "C.S. Lewis"},
    {Text: "Start where you are. Use what you have. Do what you can.", Author: "Arthur Ashe"},
    {Text: "Don't let yesterday take up too much of today.", Author: "Will Rogers"},
    {Text: "Opportunities don't happen. You create them.", Author: "Chris Grosser"},
    {Text: "The best revenge is massive success.", Author: "Frank Sinatra"},
    {Text: "I find that the harder I work, the more luck I seem to have.", Author: "Thomas Jefferson"},
    {Text: "Don't be pushed around by the fears in your mind. Be led by the dreams in your heart.", Author: "Roy T. Bennett"},
    {Text: "Hard times don't create heroes. It is during the hard times when the hero within us is revealed.", Author: "Bob Riley"},
    {Text: "The only person you are destined to become is the person you decide to be.", Author: "Ralph Waldo Emerson"},
    {Text: "Go confidently in the direction of your dreams. Live the life you have imagined.", Author: "Henry David Thoreau"},
    {Text: "What lies behind us and what lies before us are tiny matters compared to what lies within us.", Author: "Ralph Waldo Emerson"},
    {Text: "Act as if what you do makes a difference. It does.", Author: "William James"},
    {Text: "With the new day comes new strength and new thoughts.", Author: "Eleanor Roosevelt"},
    {Text: "Quality is not an act, it is a habit.", Author: "Aristotle"},
    {Text: "You miss 100% of the shots you don't take.", Author: "Wayne Gretzky"},
    {Text: "Whether you think you can or you think you can't, you're right.", Author: "Henry Ford"},
    {Text: "The mind is everything. What you think you become.", Author: "Buddha"},
    {Text: "Strive not to be a success, but rather to be of value.", Author: "Albert Einstein"},
    {Text: "I attribute my success to this: I never gave or took any excuse.", Author: "Florence Nightingale"},
    {Text: "The most difficult thing is the decision to act, the rest is merely tenacity.", Author: "Amelia Earhart"},
    {Text: "Everything has beauty, but not everyone sees it.", Author: "Confucius"},
    {Text: "Happiness is not something ready made. It comes from your own actions.", Author: "Dalai Lama"},
    {Text: "If you want to lift yourself up, lift up someone else.", Author: "Booker T. Washington"},
    {Text: "We may encounter many defeats but we must not be defeated.", Author: "Maya Angelou"},
    {Text: "Knowing is not enough; we must apply. Willing is not enough; we must do.", Author: "Johann Wolfgang von Goethe"},
    {Text: "A person who never made a mistake never tried anything new.", Author: "Albert Einstein"},
    {Text: "You only live once, but if you do it right, once is enough.", Author: "Mae West"},
    {Text: "Life is what happens when you're busy making other plans.", Author: "John Lennon"},
    {Text: "Get busy living or get busy dying.", Author: "Stephen King"},
    {Text: "The purpose of our lives is to be happy.", Author: "Dalai Lama"},
}

// RandomQuote draws uniformly from the curated set. Every call is an
// independent draw; repeats are allowed.
func RandomQuote() Quote {
    return pickQuote(motivationalQuotes)
}

func pickQuote(set []Quote) Quote {
    q := set[rand.Intn(len(set))]
    if q.Kind == "" {
        q.Kind = "quote"
    }
    return q
}

// QuoteHTML renders the styled quote block inserted for {{quote}}.
func QuoteHTML(q Quote) string {
    showAuthor := q.Author != "" && strings.ToLower(q.Author) != "unknown"
    textMargin := "0"
    if showAuthor {
        textMargin = "0 0 15px"
    }

    background := "linear-gradient(135deg, #1a1a2e 0%, #16213e 100%)"
    shadow := "0 10px 40px rgba(0,0,0,0.2)"
    emblem := "💫"
    authorColor := "rgba(255,255,255,0.6)"
    if q.Kind == "shayari" {
        background = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"
        shadow = "0 10px 40px rgba(102,126,234,0.3)"
        emblem = "✨"
        authorColor = "rgba(255,255,255,0.8)"
    }

    authorHTML := ""
    if showAuthor {
        authorHTML = fmt.Sprintf(`<p style="color: %s; font-size: 14px; margin: 0;">— %s</p>`, authorColor, q.Author)
    }

    return fmt.Sprintf(`<div style="background: %s; border-radius: 20px; padding: 35px 30px; text-align: center; box-shadow: %s;">
        <div style="font-size: 40px; margin-bottom: 15px;">%s</div>
        <p style="color: white; font-size: 20px; line-height: 1.7; margin: %s; font-style: italic;">"%s"</p>
        %s
       </div>`, background, shadow, emblem, textMargin, q.Text, authorHTML)
}

// QuoteAuthor is the value substituted for {{quote_author}}: empty when
// the author is unknown.
func QuoteAuthor(q Quote) string {
    if q.Author == "" || strings.ToLower(q.Author) == "unknown" {
        return ""
    }
    return q.Author
}
